package zha

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
)

// discoverEntities matches the endpoint's channels to entities. Device type
// matching runs first, so per cluster matching only sees what it left unclaimed.
func (e *EndpointChannels) discoverEntities(ctx context.Context) {
	e.discoverByDeviceType(ctx)
	e.discoverByCluster(ctx)
	e.handleOutputClusterException(ctx)
}

func (e *EndpointChannels) discoverByDeviceType(ctx context.Context) {
	var component rules.Component
	var found bool

	if o, ok := e.device.overrides.Lookup(e.uniqueID); ok && o.Type != "" {
		component, found = o.Type, true
		e.logger.LogDebug(ctx, "Using component from device override.", logwrap.Datum("Component", component))
	} else {
		component, found = rules.DeviceClass(e.endpoint.ProfileID, e.endpoint.DeviceID)
	}

	if !found {
		return
	}

	if !component.Supported() {
		e.logger.LogDebug(ctx, "Ignoring unsupported component.", logwrap.Datum("Component", component))
		return
	}

	m, ok := e.device.entities.GetEntity(component, e.device.reference(), e.UnclaimedChannels())
	if !ok {
		return
	}

	e.assign(ctx, component, e.uniqueID, m)
}

func (e *EndpointChannels) discoverByCluster(ctx context.Context) {
	for _, ch := range e.UnclaimedChannels() {
		cluster := ch.Cluster()

		if channel.IsChannelOnly(cluster.ID) {
			e.ClaimChannels(ch)
			continue
		}

		component, ok := rules.SingleInputComponent(cluster)
		if !ok {
			continue
		}

		e.probeSingleCluster(ctx, component, ch)
	}
}

// handleOutputClusterException turns output clusters of devices that are not
// remotes into entities, e.g. an on/off output of a motion sensor.
func (e *EndpointChannels) handleOutputClusterException(ctx context.Context) {
	if rules.IsRemote(e.endpoint.ProfileID, e.endpoint.DeviceID) {
		return
	}

	for _, id := range e.endpoint.OutClusterList {
		cluster := e.endpoint.cluster(id, channel.Out)

		if _, claimed := e.claimedChannels[cluster.ChannelID()]; claimed {
			continue
		}

		component, ok := rules.SingleOutputComponent(cluster)
		if !ok {
			continue
		}

		ch := channel.New(cluster, e)

		if e.probeSingleCluster(ctx, component, ch) {
			e.allChannels[ch.ID()] = ch
			delete(e.relayChannels, ch.ID())
		}
	}
}

func (e *EndpointChannels) probeSingleCluster(ctx context.Context, component rules.Component, ch channel.Channel) bool {
	m, ok := e.device.entities.GetEntity(component, e.device.reference(), []channel.Channel{ch})
	if !ok {
		return false
	}

	e.assign(ctx, component, fmt.Sprintf("%s-%d", e.uniqueID, ch.Cluster().ID), m)
	return true
}

func (e *EndpointChannels) assign(ctx context.Context, component rules.Component, uniqueID string, m rules.Match) {
	e.ClaimChannels(m.Channels...)

	a := Assignment{
		Component: component,
		UniqueID:  uniqueID,
		Device:    e.device.reference(),
		Channels:  m.Channels,
		Factory:   m.Factory,
	}

	e.entities[component] = append(e.entities[component], a)

	var ids []string
	for _, ch := range m.Channels {
		ids = append(ids, ch.ID())
	}

	e.logger.LogInfo(ctx, "Entity matched.", logwrap.Datum("Component", component), logwrap.Datum("UniqueID", uniqueID), logwrap.Datum("Channels", ids))
}
