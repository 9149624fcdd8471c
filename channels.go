package zha

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/zcl/communicator"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
	"github.com/shimmeringbee/zigbee"
	"sort"
	"sync"
)

// Channels is the device aggregate, it owns the endpoint channels of one device
// together with the device wide ZDO and power configuration channels.
type Channels struct {
	device    Device
	logger    logwrap.Logger
	transport *deviceTransport
	section   persistence.Section
	bus       *Bus
	overrides *DeviceOverrides
	entities  *rules.EntityRegistry
	limiter   *limiter

	zdo                *channel.ZDO
	powerConfiguration channel.Channel
	endpoints          map[zigbee.Endpoint]*EndpointChannels

	m           *sync.RWMutex
	initialized bool
}

func newChannels(d *Discovery, dev Device) *Channels {
	l := channel.ChildLogger(d.logger, logwrap.Datum("IEEEAddress", dev.IEEEAddress.String()))

	var describer channel.NodeDescriber
	if d.querier != nil {
		describer = d.querier
	}

	c := &Channels{
		device:    dev,
		logger:    l,
		section:   d.section.Section("Device", dev.UniqueID()),
		bus:       d.bus,
		overrides: d.overrides,
		entities:  d.entities,
		limiter:   newLimiter(d.concurrency),
		zdo:       channel.NewZDO(dev.IEEEAddress, describer, l),
		endpoints: map[zigbee.Endpoint]*EndpointChannels{},
		m:         &sync.RWMutex{},
	}

	c.transport = newDeviceTransport(dev.IEEEAddress, c.ManufacturerCode, d.communicator, d.binder)

	return c
}

// wantsPowerConfiguration is true until a power configuration channel has been
// kept, and never for mains powered devices.
func (c *Channels) wantsPowerConfiguration() bool {
	return !c.device.MainsPowered && c.powerConfiguration == nil
}

func (c *Channels) Device() Device {
	return c.device
}

func (c *Channels) reference() rules.Device {
	return c.device.reference()
}

func (c *Channels) UniqueID() string {
	return c.device.UniqueID()
}

// ManufacturerCode prefers the code from the node description once known.
func (c *Channels) ManufacturerCode() zigbee.ManufacturerCode {
	if nd, ok := c.zdo.NodeDescription(); ok {
		return nd.ManufacturerCode
	}

	return c.device.ManufacturerCode
}

func (c *Channels) ZDO() *channel.ZDO {
	return c.zdo
}

// PowerConfiguration returns the single power configuration channel of the
// device, nil if there is none.
func (c *Channels) PowerConfiguration() channel.Channel {
	return c.powerConfiguration
}

func (c *Channels) Endpoint(id zigbee.Endpoint) (*EndpointChannels, bool) {
	e, ok := c.endpoints[id]
	return e, ok
}

// Endpoints returns the endpoint channels ordered by endpoint id.
func (c *Channels) Endpoints() []*EndpointChannels {
	var eps []*EndpointChannels

	for _, e := range c.endpoints {
		eps = append(eps, e)
	}

	sort.Slice(eps, func(i, j int) bool {
		return eps[i].EndpointID() < eps[j].EndpointID()
	})

	return eps
}

// Assignments returns every assignment of the device, ordered by endpoint then
// component.
func (c *Channels) Assignments() []Assignment {
	var as []Assignment

	for _, e := range c.Endpoints() {
		var components []rules.Component
		for k := range e.entities {
			components = append(components, k)
		}

		sort.Slice(components, func(i, j int) bool {
			return components[i] < components[j]
		})

		for _, k := range components {
			as = append(as, e.entities[k]...)
		}
	}

	return as
}

// Initialize runs the ZDO channel first, then every endpoint concurrently. The
// returned outcomes include the ZDO's.
func (c *Channels) Initialize(ctx context.Context, fromCache bool) []Outcome {
	ctx, end := c.logger.Segment(ctx, "Initializing device channels.", logwrap.Datum("FromCache", fromCache))
	defer end()

	zdo := Outcome{ChannelID: c.zdo.ID(), Stage: StageInitialize, Err: c.zdo.Initialize(ctx, fromCache)}
	logOutcome(ctx, c.logger, zdo)

	outcomes := append([]Outcome{zdo}, c.fanOut(func(e *EndpointChannels) []Outcome {
		return e.Initialize(ctx, fromCache)
	})...)

	c.markInitialized()

	return outcomes
}

// Configure binds and configures reporting on every claimed and relay channel.
func (c *Channels) Configure(ctx context.Context) []Outcome {
	ctx, end := c.logger.Segment(ctx, "Configuring device channels.")
	defer end()

	zdo := Outcome{ChannelID: c.zdo.ID(), Stage: StageConfigure, Err: c.zdo.Configure(ctx)}
	logOutcome(ctx, c.logger, zdo)

	return append([]Outcome{zdo}, c.fanOut(func(e *EndpointChannels) []Outcome {
		return e.Configure(ctx)
	})...)
}

func (c *Channels) fanOut(fn func(*EndpointChannels) []Outcome) []Outcome {
	eps := c.Endpoints()
	results := make([][]Outcome, len(eps))

	wg := &sync.WaitGroup{}

	for i, e := range eps {
		wg.Add(1)

		go func(i int, e *EndpointChannels) {
			defer wg.Done()
			results[i] = fn(e)
		}(i, e)
	}

	wg.Wait()

	var outcomes []Outcome
	for _, r := range results {
		outcomes = append(outcomes, r...)
	}

	return outcomes
}

// Initialized is true once Initialize has completed, whatever its outcomes, or if
// the device it replaced was initialized.
func (c *Channels) Initialized() bool {
	c.m.RLock()
	defer c.m.RUnlock()

	return c.initialized
}

// HandleMessage routes an inbound ZCL message to the endpoint it came from.
func (c *Channels) HandleMessage(ctx context.Context, m communicator.MessageWithSource) {
	e, ok := c.endpoints[m.Message.SourceEndpoint]
	if !ok {
		c.logger.LogDebug(ctx, "Message received from unknown endpoint.", logwrap.Datum("Endpoint", m.Message.SourceEndpoint), logwrap.Datum("ClusterID", m.Message.ClusterID))
		return
	}

	e.route(ctx, m.Message)
}

func (c *Channels) markInitialized() {
	c.m.Lock()
	defer c.m.Unlock()

	c.initialized = true
}

func (c *Channels) Close() {
	for _, e := range c.endpoints {
		e.close()
	}
}

func (c *Channels) send(ctx context.Context, signal any) {
	if c.bus == nil {
		return
	}

	if err := c.bus.send(ctx, signal); err != nil {
		c.logger.LogError(ctx, "Signal listener failed.", logwrap.Err(err))
	}
}
