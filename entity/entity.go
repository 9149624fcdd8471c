package entity

import (
	"github.com/shimmeringbee/da"
	"github.com/shimmeringbee/da/capabilities"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
)

// Base is shared by every entity: its identity and the channels it claimed.
type Base struct {
	uniqueID  string
	component rules.Component
	device    rules.Device
	channels  []channel.Channel
}

func newBase(c rules.Component, uniqueID string, d rules.Device, chs []channel.Channel) Base {
	return Base{uniqueID: uniqueID, component: c, device: d, channels: chs}
}

func (b *Base) UniqueID() string {
	return b.uniqueID
}

func (b *Base) Component() rules.Component {
	return b.component
}

func (b *Base) Device() rules.Device {
	return b.device
}

func (b *Base) Channels() []channel.Channel {
	return b.channels
}

// Channel returns the claimed channel with the given name.
func (b *Base) Channel(name string) (channel.Channel, bool) {
	for _, ch := range b.channels {
		if ch.Name() == name {
			return ch, true
		}
	}

	return nil, false
}

// Capable entities describe themselves as device abstraction capabilities.
type Capable interface {
	Capabilities() []da.Capability
}

// CapabilityNames returns the standard names of an entity's capabilities, or nil
// if it has none.
func CapabilityNames(e rules.Entity) []string {
	c, ok := e.(Capable)
	if !ok {
		return nil
	}

	var names []string

	for _, capability := range c.Capabilities() {
		if name, found := capabilities.StandardNames[capability]; found {
			names = append(names, name)
		}
	}

	return names
}
