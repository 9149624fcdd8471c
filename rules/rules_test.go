package rules

import (
	"errors"
	"github.com/shimmeringbee/zha/channel"
	"github.com/stretchr/testify/assert"
	"testing"
)

type testEntity struct {
	uniqueID  string
	component Component
	channels  []channel.Channel
}

func (t *testEntity) UniqueID() string {
	return t.uniqueID
}

func (t *testEntity) Component() Component {
	return t.component
}

func (t *testEntity) Channels() []channel.Channel {
	return t.channels
}

func factoryFor(c Component) Factory {
	return func(uniqueID string, _ Device, chs []channel.Channel) Entity {
		return &testEntity{uniqueID: uniqueID, component: c, channels: chs}
	}
}

func namedChannel(name string) *channel.MockChannel {
	ch := &channel.MockChannel{}
	ch.On("Name").Return(name).Maybe()
	return ch
}

func TestEntityRegistry_Register(t *testing.T) {
	t.Run("rejects unsupported components", func(t *testing.T) {
		r := NewEntityRegistry()
		err := r.Register(MatchRule{Component: "climate", ChannelNames: []string{"thermostat"}}, factoryFor("climate"))
		assert.True(t, errors.Is(err, ErrUnknownComponent))
	})

	t.Run("rejects rules without channel names", func(t *testing.T) {
		r := NewEntityRegistry()
		err := r.Register(MatchRule{Component: Switch}, factoryFor(Switch))
		assert.True(t, errors.Is(err, ErrInvalidRule))
	})

	t.Run("rejects rules without a factory", func(t *testing.T) {
		r := NewEntityRegistry()
		err := r.Register(MatchRule{Component: Switch, ChannelNames: []string{channel.OnOffName}}, nil)
		assert.True(t, errors.Is(err, ErrInvalidRule))
	})

	t.Run("rejects filter expressions that do not compile", func(t *testing.T) {
		r := NewEntityRegistry()
		err := r.Register(MatchRule{Component: Switch, ChannelNames: []string{channel.OnOffName}, Filter: Filter{Expression: "Manufacturer =="}}, factoryFor(Switch))
		assert.True(t, errors.Is(err, ErrInvalidRule))
	})
}

func TestEntityRegistry_GetEntity(t *testing.T) {
	t.Run("no rule matches when a required channel is missing", func(t *testing.T) {
		r := NewEntityRegistry()
		assert.NoError(t, r.Register(MatchRule{Component: Light, ChannelNames: []string{channel.OnOffName}}, factoryFor(Light)))

		_, ok := r.GetEntity(Light, Device{}, []channel.Channel{namedChannel(channel.LevelName)})
		assert.False(t, ok)
	})

	t.Run("claims required and present auxiliary channels", func(t *testing.T) {
		r := NewEntityRegistry()
		assert.NoError(t, r.Register(MatchRule{Component: Light, ChannelNames: []string{channel.OnOffName}, AuxChannels: []string{channel.LevelName, channel.ColorName}}, factoryFor(Light)))

		onOff := namedChannel(channel.OnOffName)
		lvl := namedChannel(channel.LevelName)
		basic := namedChannel(channel.BasicName)

		m, ok := r.GetEntity(Light, Device{}, []channel.Channel{basic, lvl, onOff})
		assert.True(t, ok)
		assert.Equal(t, []channel.Channel{onOff, lvl}, m.Channels)
	})

	t.Run("more required channels wins over fewer", func(t *testing.T) {
		r := NewEntityRegistry()
		assert.NoError(t, r.Register(MatchRule{Component: Sensor, ChannelNames: []string{channel.TemperatureName}}, factoryFor(Sensor)))
		assert.NoError(t, r.Register(MatchRule{Component: Sensor, ChannelNames: []string{channel.TemperatureName, channel.HumidityName}}, factoryFor(Sensor)))

		m, ok := r.GetEntity(Sensor, Device{}, []channel.Channel{namedChannel(channel.TemperatureName), namedChannel(channel.HumidityName)})
		assert.True(t, ok)
		assert.Len(t, m.Channels, 2)
	})

	t.Run("matched auxiliary channels break ties between equal rules", func(t *testing.T) {
		r := NewEntityRegistry()
		assert.NoError(t, r.Register(MatchRule{Component: Light, ChannelNames: []string{channel.OnOffName}}, factoryFor(Light)))
		assert.NoError(t, r.Register(MatchRule{Component: Light, ChannelNames: []string{channel.OnOffName}, AuxChannels: []string{channel.LevelName}}, factoryFor(Light)))

		m, ok := r.GetEntity(Light, Device{}, []channel.Channel{namedChannel(channel.OnOffName), namedChannel(channel.LevelName)})
		assert.True(t, ok)
		assert.Equal(t, []string{channel.LevelName}, m.Rule.AuxChannels)
	})

	t.Run("equal specificity is won by the first registered", func(t *testing.T) {
		r := NewEntityRegistry()
		assert.NoError(t, r.Register(MatchRule{Component: Switch, ChannelNames: []string{channel.OnOffName}, AuxChannels: []string{"first"}}, factoryFor(Switch)))
		assert.NoError(t, r.Register(MatchRule{Component: Switch, ChannelNames: []string{channel.OnOffName}, AuxChannels: []string{"second"}}, factoryFor(Switch)))

		m, ok := r.GetEntity(Switch, Device{}, []channel.Channel{namedChannel(channel.OnOffName)})
		assert.True(t, ok)
		assert.Equal(t, []string{"first"}, m.Rule.AuxChannels)
	})

	t.Run("manufacturer filters take priority and only match their manufacturer", func(t *testing.T) {
		r := NewEntityRegistry()
		assert.NoError(t, r.Register(MatchRule{Component: Switch, ChannelNames: []string{channel.OnOffName}}, factoryFor(Switch)))
		assert.NoError(t, r.Register(MatchRule{Component: Switch, ChannelNames: []string{channel.OnOffName}, Filter: Filter{Manufacturers: []string{"IKEA of Sweden"}}}, factoryFor(Switch)))

		chs := []channel.Channel{namedChannel(channel.OnOffName)}

		m, ok := r.GetEntity(Switch, Device{Manufacturer: "IKEA of Sweden"}, chs)
		assert.True(t, ok)
		assert.Equal(t, []string{"IKEA of Sweden"}, m.Rule.Filter.Manufacturers)

		m, ok = r.GetEntity(Switch, Device{Manufacturer: "LUMI"}, chs)
		assert.True(t, ok)
		assert.Empty(t, m.Rule.Filter.Manufacturers)
	})

	t.Run("filter expressions are evaluated against the device", func(t *testing.T) {
		r := NewEntityRegistry()
		assert.NoError(t, r.Register(MatchRule{Component: Sensor, ChannelNames: []string{channel.PowerConfigurationName}, Filter: Filter{Expression: `not MainsPowered and Model startsWith "lumi."`}}, factoryFor(Sensor)))

		chs := []channel.Channel{namedChannel(channel.PowerConfigurationName)}

		_, ok := r.GetEntity(Sensor, Device{Model: "lumi.sensor_ht"}, chs)
		assert.True(t, ok)

		_, ok = r.GetEntity(Sensor, Device{Model: "TRADFRI bulb"}, chs)
		assert.False(t, ok)
	})

	t.Run("rules of other components are not considered", func(t *testing.T) {
		r := NewEntityRegistry()
		assert.NoError(t, r.Register(MatchRule{Component: Switch, ChannelNames: []string{channel.OnOffName}}, factoryFor(Switch)))

		_, ok := r.GetEntity(Light, Device{}, []channel.Channel{namedChannel(channel.OnOffName)})
		assert.False(t, ok)
	})
}

func TestClasses(t *testing.T) {
	t.Run("single input lookup prefers kind over id", func(t *testing.T) {
		c, ok := SingleInputComponent(channel.Cluster{ID: channel.DoorLockId, Kind: "multistate_input"})
		assert.True(t, ok)
		assert.Equal(t, Sensor, c)

		c, ok = SingleInputComponent(channel.Cluster{ID: channel.DoorLockId, Kind: "door_lock"})
		assert.True(t, ok)
		assert.Equal(t, Lock, c)
	})

	t.Run("remote device types are recognised per profile", func(t *testing.T) {
		assert.True(t, IsRemote(0x0104, 0x0006))
		assert.False(t, IsRemote(0x0104, 0x0001))
		assert.False(t, IsRemote(ProfileLightLink, 0x0006))
	})
}
