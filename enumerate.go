package zha

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/retry"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/local/basic"
	"github.com/shimmeringbee/zha/attribute"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zigbee"
	"time"
)

const DefaultNetworkTimeout = 3000 * time.Millisecond
const DefaultNetworkRetries = 5

// Enumerator queries a node for everything discovery needs to know about it.
type Enumerator struct {
	querier      NodeQuerier
	communicator ZCLCommunicator
	logger       logwrap.Logger
}

func NewEnumerator(q NodeQuerier, c ZCLCommunicator, l logwrap.Logger) *Enumerator {
	return &Enumerator{querier: q, communicator: c, logger: l}
}

func (z *Enumerator) Enumerate(pctx context.Context, ieee zigbee.IEEEAddress) (Device, error) {
	ctx, segmentEnd := z.logger.Segment(pctx, "Node enumeration.", logwrap.Datum("IEEEAddress", ieee.String()))
	defer segmentEnd()

	dev := Device{IEEEAddress: ieee, Endpoints: map[zigbee.Endpoint]Endpoint{}}

	var nd zigbee.NodeDescription
	if err := retry.Retry(ctx, DefaultNetworkTimeout, DefaultNetworkRetries, func(ctx context.Context) error {
		var err error
		nd, err = z.querier.QueryNodeDescription(ctx, ieee)
		return err
	}); err != nil {
		z.logger.LogError(ctx, "Failed to enumerate node description.", logwrap.Err(err))
		return Device{}, fmt.Errorf("node description: %w", err)
	}

	dev.ManufacturerCode = nd.ManufacturerCode
	z.logger.LogDebug(ctx, "Enumerated node description.", logwrap.Datum("NodeDescription", nd))

	var eps []zigbee.Endpoint
	if err := retry.Retry(ctx, DefaultNetworkTimeout, DefaultNetworkRetries, func(ctx context.Context) error {
		var err error
		eps, err = z.querier.QueryNodeEndpoints(ctx, ieee)
		return err
	}); err != nil {
		z.logger.LogError(ctx, "Failed to enumerate node endpoints.", logwrap.Err(err))
		return Device{}, fmt.Errorf("node endpoints: %w", err)
	}

	for _, ep := range eps {
		if ep == 0 {
			continue
		}

		var epd zigbee.EndpointDescription
		if err := retry.Retry(ctx, DefaultNetworkTimeout, DefaultNetworkRetries, func(ctx context.Context) error {
			var err error
			epd, err = z.querier.QueryNodeEndpointDescription(ctx, ieee, ep)
			return err
		}); err != nil {
			z.logger.LogError(ctx, "Failed to enumerate node endpoint description.", logwrap.Datum("Endpoint", ep), logwrap.Err(err))
			return Device{}, fmt.Errorf("endpoint %d description: %w", ep, err)
		}

		z.logger.LogDebug(ctx, "Enumerated endpoint description.", logwrap.Datum("Endpoint", ep), logwrap.Datum("EndpointDescription", epd))
		dev.Endpoints[ep] = Endpoint{EndpointDescription: epd}
	}

	if err := z.readProductInformation(ctx, &dev); err != nil {
		z.logger.LogWarn(ctx, "Failed to read product information.", logwrap.Err(err))
	}

	return dev, nil
}

// readProductInformation reads the Basic cluster of the first endpoint that has
// one. Product information is best effort, a device is still discovered without.
func (z *Enumerator) readProductInformation(ctx context.Context, dev *Device) error {
	var ep zigbee.Endpoint
	var found bool

	for _, id := range dev.EndpointIDs() {
		if isClusterIdInSlice(dev.Endpoints[id].InClusterList, zcl.BasicId) {
			ep, found = id, true
			break
		}
	}

	if !found || z.communicator == nil {
		return nil
	}

	code := dev.ManufacturerCode
	t := newDeviceTransport(dev.IEEEAddress, func() zigbee.ManufacturerCode { return code }, z.communicator, nil)

	var records []attribute.Record
	if err := retry.Retry(ctx, DefaultNetworkTimeout, DefaultNetworkRetries, func(ctx context.Context) error {
		rs, err := t.ReadAttributes(ctx, ep, zcl.BasicId, zigbee.NoManufacturer, []zcl.AttributeID{basic.ManufacturerName, basic.ModelIdentifier, basic.PowerSource})
		records = attribute.FromReadResponse(rs)
		return err
	}); err != nil {
		return err
	}

	for _, r := range records {
		switch r.ID {
		case basic.ManufacturerName:
			dev.Manufacturer, _ = r.Value.Value.(string)
		case basic.ModelIdentifier:
			dev.Model, _ = r.Value.Value.(string)
		case basic.PowerSource:
			switch v := r.Value.Value.(type) {
			case uint8:
				dev.MainsPowered = channel.IsMainsPowerSource(uint64(v))
			case uint64:
				dev.MainsPowered = channel.IsMainsPowerSource(v)
			}
		}
	}

	return nil
}
