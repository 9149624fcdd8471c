package entity

import (
	"github.com/shimmeringbee/da"
	"github.com/shimmeringbee/da/capabilities"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/persistence/impl/memory"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
	"github.com/shimmeringbee/zigbee"
	"github.com/stretchr/testify/assert"
	"testing"
)

func newOwner() *channel.StubOwner {
	return &channel.StubOwner{
		IEEE:     zigbee.GenerateLocalAdministeredIEEEAddress(),
		Endpoint: 1,
		Network:  &channel.MockTransport{},
		Storage:  memory.New(),
		Log:      logwrap.New(discard.Discard()),
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Run("a light claims on/off, level and color", func(t *testing.T) {
		o := newOwner()
		onOff := channel.New(channel.Cluster{Endpoint: 1, ID: zcl.OnOffId}, o)
		lvl := channel.New(channel.Cluster{Endpoint: 1, ID: zcl.LevelControlId}, o)
		color := channel.New(channel.Cluster{Endpoint: 1, ID: zcl.ColorControlId}, o)

		m, ok := DefaultRegistry().GetEntity(rules.Light, rules.Device{}, []channel.Channel{color, lvl, onOff})
		assert.True(t, ok)
		assert.ElementsMatch(t, []channel.Channel{onOff, lvl, color}, m.Channels)

		e := m.Factory("uid", rules.Device{}, m.Channels).(*Light)
		assert.Equal(t, "uid", e.UniqueID())
		assert.Equal(t, rules.Light, e.Component())
		assert.NotNil(t, e.OnOff)
		assert.NotNil(t, e.Level)
		assert.NotNil(t, e.Color)
		assert.Equal(t, []da.Capability{capabilities.OnOffFlag, capabilities.LevelFlag, capabilities.ColorFlag}, e.Capabilities())
	})

	t.Run("a power configuration channel becomes a battery sensor", func(t *testing.T) {
		o := newOwner()
		power := channel.New(channel.Cluster{Endpoint: 1, ID: zcl.PowerConfigurationId}, o)

		m, ok := DefaultRegistry().GetEntity(rules.Sensor, rules.Device{}, []channel.Channel{power})
		assert.True(t, ok)

		e := m.Factory("uid", rules.Device{}, m.Channels)
		assert.Equal(t, []string{capabilities.StandardNames[capabilities.PowerSupplyFlag]}, CapabilityNames(e))
	})

	t.Run("entities without capabilities have no capability names", func(t *testing.T) {
		e := NewCover("uid", rules.Device{}, nil)
		assert.Nil(t, CapabilityNames(e))
	})
}
