package entity

import (
	"github.com/shimmeringbee/da"
	"github.com/shimmeringbee/da/capabilities"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
)

type Light struct {
	Base
	OnOff *channel.OnOff
	Level *channel.LevelControl
	Color *channel.ColorControl
}

func NewLight(uniqueID string, d rules.Device, chs []channel.Channel) rules.Entity {
	l := &Light{Base: newBase(rules.Light, uniqueID, d, chs)}

	for _, ch := range chs {
		switch c := ch.(type) {
		case *channel.OnOff:
			l.OnOff = c
		case *channel.LevelControl:
			l.Level = c
		case *channel.ColorControl:
			l.Color = c
		}
	}

	return l
}

func (l *Light) Capabilities() []da.Capability {
	caps := []da.Capability{capabilities.OnOffFlag}

	if l.Level != nil {
		caps = append(caps, capabilities.LevelFlag)
	}

	if l.Color != nil {
		caps = append(caps, capabilities.ColorFlag)
	}

	return caps
}

type Switch struct {
	Base
}

func NewSwitch(uniqueID string, d rules.Device, chs []channel.Channel) rules.Entity {
	return &Switch{Base: newBase(rules.Switch, uniqueID, d, chs)}
}

func (s *Switch) Capabilities() []da.Capability {
	return []da.Capability{capabilities.OnOffFlag}
}

type Cover struct {
	Base
}

func NewCover(uniqueID string, d rules.Device, chs []channel.Channel) rules.Entity {
	return &Cover{Base: newBase(rules.Cover, uniqueID, d, chs)}
}

type Fan struct {
	Base
}

func NewFan(uniqueID string, d rules.Device, chs []channel.Channel) rules.Entity {
	return &Fan{Base: newBase(rules.Fan, uniqueID, d, chs)}
}

type Lock struct {
	Base
}

func NewLock(uniqueID string, d rules.Device, chs []channel.Channel) rules.Entity {
	return &Lock{Base: newBase(rules.Lock, uniqueID, d, chs)}
}

// BinarySensor is backed by an IAS zone, occupancy or on/off output cluster.
type BinarySensor struct {
	Base
}

func NewBinarySensor(uniqueID string, d rules.Device, chs []channel.Channel) rules.Entity {
	return &BinarySensor{Base: newBase(rules.BinarySensor, uniqueID, d, chs)}
}

func (b *BinarySensor) Capabilities() []da.Capability {
	if _, ok := b.Channel(channel.IASZoneName); ok {
		return []da.Capability{capabilities.AlarmSensorFlag}
	}

	return nil
}

type Sensor struct {
	Base
}

func NewSensor(uniqueID string, d rules.Device, chs []channel.Channel) rules.Entity {
	return &Sensor{Base: newBase(rules.Sensor, uniqueID, d, chs)}
}

var sensorCapabilities = map[string]da.Capability{
	channel.PowerConfigurationName: capabilities.PowerSupplyFlag,
	channel.TemperatureName:        capabilities.TemperatureSensorFlag,
	channel.PressureName:           capabilities.PressureSensorFlag,
	channel.HumidityName:           capabilities.RelativeHumiditySensorFlag,
}

func (s *Sensor) Capabilities() []da.Capability {
	var caps []da.Capability

	for _, ch := range s.channels {
		if c, ok := sensorCapabilities[ch.Name()]; ok {
			caps = append(caps, c)
		}
	}

	return caps
}

type DeviceTracker struct {
	Base
}

func NewDeviceTracker(uniqueID string, d rules.Device, chs []channel.Channel) rules.Entity {
	return &DeviceTracker{Base: newBase(rules.DeviceTracker, uniqueID, d, chs)}
}
