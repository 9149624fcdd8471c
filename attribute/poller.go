package attribute

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/global"
	"github.com/shimmeringbee/zigbee"
	"sync"
	"time"
)

type Reader interface {
	ReadAttributes(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID, code zigbee.ManufacturerCode, attributes []zcl.AttributeID) ([]global.ReadAttributeResponseRecord, error)
}

const DefaultReadTimeout = 5 * time.Second

// Poller periodically reads attributes that could not have reporting configured.
type Poller struct {
	reader     Reader
	target     Target
	attributes []zcl.AttributeID
	interval   time.Duration
	callback   func(context.Context, []Record)
	logger     logwrap.Logger

	m      *sync.Mutex
	ticker *time.Ticker
	stop   chan struct{}
}

func NewPoller(r Reader, t Target, attributes []zcl.AttributeID, interval time.Duration, cb func(context.Context, []Record), l logwrap.Logger) *Poller {
	return &Poller{
		reader:     r,
		target:     t,
		attributes: attributes,
		interval:   interval,
		callback:   cb,
		logger:     l,
		m:          &sync.Mutex{},
	}
}

// Start begins polling, it is a no-op if the poller is already running.
func (p *Poller) Start(ctx context.Context) {
	p.m.Lock()
	defer p.m.Unlock()

	if p.ticker != nil {
		return
	}

	p.logger.LogInfo(ctx, "Starting attribute poller.", logwrap.Datum("ClusterID", p.target.Cluster), logwrap.Datum("intervalMs", p.interval.Milliseconds()))

	p.ticker = time.NewTicker(p.interval)
	p.stop = make(chan struct{})

	go p.run(context.WithoutCancel(ctx), p.ticker, p.stop)
}

func (p *Poller) Stop() {
	p.m.Lock()
	defer p.m.Unlock()

	if p.ticker == nil {
		return
	}

	close(p.stop)
	p.ticker.Stop()
	p.ticker = nil
}

func (p *Poller) Running() bool {
	p.m.Lock()
	defer p.m.Unlock()

	return p.ticker != nil
}

func (p *Poller) run(pctx context.Context, t *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			p.Poll(pctx)
		}
	}
}

// Poll reads the attributes once.
func (p *Poller) Poll(pctx context.Context) {
	ctx, done := context.WithTimeout(pctx, DefaultReadTimeout)
	defer done()

	rs, err := p.reader.ReadAttributes(ctx, p.target.Endpoint, p.target.Cluster, p.target.ManufacturerCode, p.attributes)
	if err != nil {
		p.logger.LogError(ctx, "Failed to read attribute.", logwrap.Err(err), logwrap.Datum("ClusterID", p.target.Cluster))
		return
	}

	if records := FromReadResponse(rs); len(records) > 0 {
		p.callback(pctx, records)
	}
}
