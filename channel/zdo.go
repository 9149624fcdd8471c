package channel

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/zigbee"
	"sync"
)

type NodeDescriber interface {
	QueryNodeDescription(ctx context.Context, ieeeAddress zigbee.IEEEAddress) (zigbee.NodeDescription, error)
}

// ZDO is the device level channel on endpoint 0. It is never claimed by an entity
// and runs before any cluster channel so the node description is known to them.
type ZDO struct {
	ieee      zigbee.IEEEAddress
	describer NodeDescriber
	logger    logwrap.Logger

	m           *sync.RWMutex
	description zigbee.NodeDescription
	described   bool
}

var _ Lifecycle = (*ZDO)(nil)

func NewZDO(ieee zigbee.IEEEAddress, d NodeDescriber, l logwrap.Logger) *ZDO {
	return &ZDO{
		ieee:      ieee,
		describer: d,
		logger:    ChildLogger(l, logwrap.Datum("Channel", ZDOName)),
		m:         &sync.RWMutex{},
	}
}

func (z *ZDO) ID() string {
	return fmt.Sprintf("0:%s", ZDOName)
}

func (z *ZDO) Name() string {
	return ZDOName
}

// Seed records a node description already known, e.g. from enumeration.
func (z *ZDO) Seed(nd zigbee.NodeDescription) {
	z.m.Lock()
	defer z.m.Unlock()

	z.description = nd
	z.described = true
}

func (z *ZDO) Initialize(ctx context.Context, fromCache bool) error {
	if fromCache {
		if _, ok := z.NodeDescription(); ok {
			return nil
		}
	}

	if z.describer == nil {
		return nil
	}

	nd, err := z.describer.QueryNodeDescription(ctx, z.ieee)
	if err != nil {
		return fmt.Errorf("query node description: %w", err)
	}

	z.logger.LogDebug(ctx, "Node description retrieved.", logwrap.Datum("NodeDescription", nd))
	z.Seed(nd)

	return nil
}

func (z *ZDO) Configure(ctx context.Context) error {
	z.logger.LogTrace(ctx, "Nothing to configure on ZDO.")
	return nil
}

func (z *ZDO) NodeDescription() (zigbee.NodeDescription, bool) {
	z.m.RLock()
	defer z.m.RUnlock()

	return z.description, z.described
}

// ManufacturerCode returns the manufacturer code from the node description, or
// NoManufacturer until one has been retrieved.
func (z *ZDO) ManufacturerCode() zigbee.ManufacturerCode {
	if nd, ok := z.NodeDescription(); ok {
		return nd.ManufacturerCode
	}

	return zigbee.NoManufacturer
}
