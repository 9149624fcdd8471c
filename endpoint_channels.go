package zha

import (
	"context"
	"errors"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
	"github.com/shimmeringbee/zigbee"
	"sort"
)

var ErrInvalidEndpoint = errors.New("invalid endpoint")

// EndpointChannels holds the channels of one endpoint. allChannels has one channel
// per input cluster, claimedChannels the subset owned by an entity or claimed as
// channel only, relayChannels the output clusters whose commands become device
// events. Matching is the only writer, lifecycle operations only read.
type EndpointChannels struct {
	device   *Channels
	endpoint Endpoint
	uniqueID string
	logger   logwrap.Logger

	allChannels     map[string]channel.Channel
	claimedChannels map[string]channel.Channel
	relayChannels   map[string]channel.Channel
	entities        map[rules.Component][]Assignment

	status *lifecycleStatus
}

var _ channel.Owner = (*EndpointChannels)(nil)

func newEndpointChannels(c *Channels, e Endpoint) (*EndpointChannels, error) {
	if e.Endpoint == 0 {
		return nil, fmt.Errorf("%w: endpoint 0 is reserved for ZDO", ErrInvalidEndpoint)
	}

	l := channel.ChildLogger(c.logger, logwrap.Datum("Endpoint", e.Endpoint))

	return &EndpointChannels{
		device:          c,
		endpoint:        e,
		uniqueID:        fmt.Sprintf("%s-%d", c.UniqueID(), e.Endpoint),
		logger:          l,
		allChannels:     map[string]channel.Channel{},
		claimedChannels: map[string]channel.Channel{},
		relayChannels:   map[string]channel.Channel{},
		entities:        map[rules.Component][]Assignment{},
		status:          newLifecycleStatus(),
	}, nil
}

// addAllChannels creates a channel for every input cluster. Power configuration
// channels are only kept for the first endpoint to offer one on a device that is
// not mains powered.
func (e *EndpointChannels) addAllChannels() {
	for _, id := range e.endpoint.InClusterList {
		cluster := e.endpoint.cluster(id, channel.In)
		power := id == zcl.PowerConfigurationId && !channel.Misused(cluster)

		if power && !e.device.wantsPowerConfiguration() {
			e.logger.LogDebug(context.Background(), "Dropping power configuration channel, device already has one or is mains powered.")
			continue
		}

		ch := channel.New(cluster, e)

		if power {
			e.device.powerConfiguration = ch
		}

		e.allChannels[ch.ID()] = ch
	}
}

// addRelayChannels creates an event relay channel for each relay eligible output
// cluster.
func (e *EndpointChannels) addRelayChannels() {
	for _, id := range channel.EventRelayClusters {
		if e.endpoint.hasOutCluster(id) {
			ch := channel.NewEventRelay(e.endpoint.cluster(id, channel.Out), e)
			e.relayChannels[ch.ID()] = ch
		}
	}
}

// ClaimChannels marks channels as owned. Claiming an already claimed id replaces
// the channel held for it.
func (e *EndpointChannels) ClaimChannels(chs ...channel.Channel) {
	for _, ch := range chs {
		e.claimedChannels[ch.ID()] = ch
	}
}

// UnclaimedChannels returns channels not yet claimed, ordered by id.
func (e *EndpointChannels) UnclaimedChannels() []channel.Channel {
	var chs []channel.Channel

	for id, ch := range e.allChannels {
		if _, claimed := e.claimedChannels[id]; !claimed {
			chs = append(chs, ch)
		}
	}

	return sortChannels(chs)
}

func (e *EndpointChannels) AllChannels() map[string]channel.Channel {
	return copyChannels(e.allChannels)
}

func (e *EndpointChannels) ClaimedChannels() map[string]channel.Channel {
	return copyChannels(e.claimedChannels)
}

func (e *EndpointChannels) RelayChannels() map[string]channel.Channel {
	return copyChannels(e.relayChannels)
}

// Entities returns the assignments made for the endpoint by component.
func (e *EndpointChannels) Entities() map[rules.Component][]Assignment {
	m := make(map[rules.Component][]Assignment, len(e.entities))

	for k, v := range e.entities {
		m[k] = append([]Assignment(nil), v...)
	}

	return m
}

func (e *EndpointChannels) ProfileID() zigbee.ProfileID {
	return e.endpoint.ProfileID
}

func (e *EndpointChannels) DeviceType() uint16 {
	return e.endpoint.DeviceID
}

func (e *EndpointChannels) UniqueID() string {
	return e.uniqueID
}

func (e *EndpointChannels) EndpointID() zigbee.Endpoint {
	return e.endpoint.Endpoint
}

func (e *EndpointChannels) IEEEAddress() zigbee.IEEEAddress {
	return e.device.device.IEEEAddress
}

func (e *EndpointChannels) ManufacturerCode() zigbee.ManufacturerCode {
	return e.device.ManufacturerCode()
}

func (e *EndpointChannels) Transport() channel.Transport {
	return e.device.transport
}

func (e *EndpointChannels) Logger() logwrap.Logger {
	return e.logger
}

func (e *EndpointChannels) Section(channelID string) persistence.Section {
	return e.device.section.Section("Channel", channelID)
}

// SendEvent sends a device event, adding the endpoint's identity.
func (e *EndpointChannels) SendEvent(ctx context.Context, event map[string]any) {
	data := make(map[string]any, len(event)+2)
	for k, v := range event {
		data[k] = v
	}

	data["unique_id"] = e.uniqueID
	data["endpoint_id"] = int(e.endpoint.Endpoint)

	e.device.send(ctx, DeviceEvent{
		IEEEAddress: e.IEEEAddress(),
		UniqueID:    e.uniqueID,
		EndpointID:  e.endpoint.Endpoint,
		Data:        data,
	})
}

func (e *EndpointChannels) AttributeUpdated(ctx context.Context, ch channel.Channel, id zcl.AttributeID, value zcl.AttributeDataTypeValue) {
	e.device.send(ctx, AttributeUpdated{
		IEEEAddress: e.IEEEAddress(),
		UniqueID:    e.uniqueID,
		ChannelID:   ch.ID(),
		ChannelName: ch.Name(),
		AttributeID: id,
		Value:       value,
	})
}

// route delivers an inbound message to the channel responsible for it.
func (e *EndpointChannels) route(ctx context.Context, m zcl.Message) {
	id := channel.ID(e.endpoint.Endpoint, m.ClusterID)

	if m.Direction == zcl.ServerToClient {
		if ch, ok := e.allChannels[id]; ok && ch.Cluster().Direction == channel.In {
			ch.HandleMessage(ctx, m)
		}
		return
	}

	if ch, ok := e.relayChannels[id]; ok {
		ch.HandleMessage(ctx, m)
		return
	}

	if ch, ok := e.claimedChannels[id]; ok && ch.Cluster().Direction == channel.Out {
		ch.HandleMessage(ctx, m)
	}
}

// lifecycleChannels returns the claimed and relay channels, ordered by id.
func (e *EndpointChannels) lifecycleChannels() []channel.Channel {
	var chs []channel.Channel

	for _, ch := range e.claimedChannels {
		chs = append(chs, ch)
	}

	for _, ch := range e.relayChannels {
		chs = append(chs, ch)
	}

	return sortChannels(chs)
}

func (e *EndpointChannels) close() {
	for _, m := range []map[string]channel.Channel{e.allChannels, e.relayChannels} {
		for _, ch := range m {
			if c, ok := ch.(interface{ Close() }); ok {
				c.Close()
			}
		}
	}
}

func sortChannels(chs []channel.Channel) []channel.Channel {
	sort.SliceStable(chs, func(i, j int) bool {
		return chs[i].ID() < chs[j].ID()
	})

	return chs
}

func copyChannels(m map[string]channel.Channel) map[string]channel.Channel {
	c := make(map[string]channel.Channel, len(m))

	for k, v := range m {
		c[k] = v
	}

	return c
}
