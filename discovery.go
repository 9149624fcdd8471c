package zha

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/persistence/impl/memory"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/communicator"
	"github.com/shimmeringbee/zha/rules"
	"github.com/shimmeringbee/zigbee"
	"sync"
)

// Discovery builds the channel aggregate of devices and matches their channels
// to entities. Without a network it runs dry, every ZCL request fails with
// ErrNoNetwork.
type Discovery struct {
	logger      logwrap.Logger
	entities    *rules.EntityRegistry
	overrides   *DeviceOverrides
	bus         *Bus
	section     persistence.Section
	concurrency int64

	communicator ZCLCommunicator
	binder       NodeBinder
	querier      NodeQuerier
	registrar    MatchRegistrar

	m       *sync.RWMutex
	devices map[zigbee.IEEEAddress]*Channels
	matches map[zigbee.IEEEAddress]communicator.Match
}

func NewDiscovery(entities *rules.EntityRegistry, overrides *DeviceOverrides, bus *Bus, section persistence.Section) *Discovery {
	if section == nil {
		section = memory.New()
	}

	if overrides == nil {
		overrides = NewDeviceOverrides()
	}

	return &Discovery{
		logger:      logwrap.New(discard.Discard()),
		entities:    entities,
		overrides:   overrides,
		bus:         bus,
		section:     section,
		concurrency: DefaultConcurrency,
		m:           &sync.RWMutex{},
		devices:     map[zigbee.IEEEAddress]*Channels{},
		matches:     map[zigbee.IEEEAddress]communicator.Match{},
	}
}

// WithNetwork provides the ZCL and ZDO access channels use. Any may be nil.
func (d *Discovery) WithNetwork(c ZCLCommunicator, b NodeBinder, q NodeQuerier) {
	d.communicator = c
	d.binder = b
	d.querier = q
}

// WithMatchRegistrar has inbound messages from discovered devices routed to their
// channels.
func (d *Discovery) WithMatchRegistrar(r MatchRegistrar) {
	d.registrar = r
}

// WithConcurrency sets the number of channel operations each device may have in
// flight.
func (d *Discovery) WithConcurrency(n int64) {
	if n > 0 {
		d.concurrency = n
	}
}

// Discover builds the channels of a device, matches them to entities and emits
// EntityDiscovered for each assignment. A device discovered again replaces the
// previous aggregate, entities are not emitted again if it had been initialized.
func (d *Discovery) Discover(ctx context.Context, dev Device) (*Channels, error) {
	ctx, end := d.logger.Segment(ctx, "Device discovery.", logwrap.Datum("IEEEAddress", dev.IEEEAddress.String()))
	defer end()

	c := newChannels(d, dev)

	for _, id := range dev.EndpointIDs() {
		e, err := newEndpointChannels(c, dev.Endpoints[id])
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", dev.UniqueID(), err)
		}

		e.addAllChannels()
		e.addRelayChannels()
		c.endpoints[id] = e
	}

	for _, e := range c.Endpoints() {
		e.discoverEntities(ctx)
	}

	d.m.Lock()
	previous := d.devices[dev.IEEEAddress]
	previousMatch, hadMatch := d.matches[dev.IEEEAddress]
	d.devices[dev.IEEEAddress] = c
	delete(d.matches, dev.IEEEAddress)
	d.m.Unlock()

	if previous != nil {
		d.logger.LogInfo(ctx, "Replacing previously discovered device.", logwrap.Datum("Initialized", previous.Initialized()))
		previous.Close()
	}

	if hadMatch && d.registrar != nil {
		d.registrar.UnregisterMatch(previousMatch)
	}

	d.register(c)

	if previous != nil && previous.Initialized() {
		c.markInitialized()
		return c, nil
	}

	for _, a := range c.Assignments() {
		c.send(ctx, EntityDiscovered{Assignment: a})
	}

	return c, nil
}

func (d *Discovery) register(c *Channels) {
	if d.registrar == nil {
		return
	}

	ieee := c.device.IEEEAddress

	match := communicator.NewMatch(func(a zigbee.IEEEAddress, _ zigbee.ApplicationMessage, m zcl.Message) bool {
		return a == ieee && m.DestinationEndpoint == c.transport.localEndpoint
	}, func(m communicator.MessageWithSource) {
		c.HandleMessage(context.Background(), m)
	})

	d.m.Lock()
	d.matches[ieee] = match
	d.m.Unlock()

	d.registrar.RegisterMatch(match)
}

func (d *Discovery) Device(ieee zigbee.IEEEAddress) (*Channels, bool) {
	d.m.RLock()
	defer d.m.RUnlock()

	c, ok := d.devices[ieee]
	return c, ok
}

// Devices returns every discovered device.
func (d *Discovery) Devices() []*Channels {
	d.m.RLock()
	defer d.m.RUnlock()

	var cs []*Channels
	for _, c := range d.devices {
		cs = append(cs, c)
	}

	return cs
}

// Remove forgets a device, stopping any polling its channels run.
func (d *Discovery) Remove(ctx context.Context, ieee zigbee.IEEEAddress) bool {
	d.m.Lock()
	c, found := d.devices[ieee]
	match, hadMatch := d.matches[ieee]
	delete(d.devices, ieee)
	delete(d.matches, ieee)
	d.m.Unlock()

	if !found {
		return false
	}

	c.Close()

	if hadMatch && d.registrar != nil {
		d.registrar.UnregisterMatch(match)
	}

	d.logger.LogInfo(ctx, "Device removed.", logwrap.Datum("IEEEAddress", ieee.String()))

	return true
}
