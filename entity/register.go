package entity

import (
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
)

type registration struct {
	rule    rules.MatchRule
	factory rules.Factory
}

var defaults = []registration{
	{rules.MatchRule{Component: rules.Light, ChannelNames: []string{channel.OnOffName}, AuxChannels: []string{channel.LevelName, channel.ColorName}}, NewLight},
	{rules.MatchRule{Component: rules.Switch, ChannelNames: []string{channel.OnOffName}}, NewSwitch},
	{rules.MatchRule{Component: rules.Cover, ChannelNames: []string{channel.WindowCoveringName}}, NewCover},
	{rules.MatchRule{Component: rules.Fan, ChannelNames: []string{channel.FanName}}, NewFan},
	{rules.MatchRule{Component: rules.Lock, ChannelNames: []string{channel.DoorLockName}}, NewLock},
	{rules.MatchRule{Component: rules.BinarySensor, ChannelNames: []string{channel.IASZoneName}}, NewBinarySensor},
	{rules.MatchRule{Component: rules.BinarySensor, ChannelNames: []string{channel.OccupancyName}}, NewBinarySensor},
	{rules.MatchRule{Component: rules.BinarySensor, ChannelNames: []string{channel.OnOffName}}, NewBinarySensor},
	{rules.MatchRule{Component: rules.BinarySensor, ChannelNames: []string{"binary_input"}}, NewBinarySensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{channel.PowerConfigurationName}}, NewSensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{channel.TemperatureName}}, NewSensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{channel.PressureName}}, NewSensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{channel.HumidityName}}, NewSensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{channel.IlluminanceName}}, NewSensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{channel.MultistateInputName}}, NewSensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{"analog_input"}}, NewSensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{"smartenergy_metering"}}, NewSensor},
	{rules.MatchRule{Component: rules.Sensor, ChannelNames: []string{"electrical_measurement"}}, NewSensor},
	{rules.MatchRule{Component: rules.DeviceTracker, ChannelNames: []string{channel.PowerConfigurationName}}, NewDeviceTracker},
}

// Register adds the match rules of every entity in this package.
func Register(r *rules.EntityRegistry) error {
	for _, reg := range defaults {
		if err := r.Register(reg.rule, reg.factory); err != nil {
			return err
		}
	}

	return nil
}

// DefaultRegistry returns a registry holding the rules of every entity in this
// package.
func DefaultRegistry() *rules.EntityRegistry {
	r := rules.NewEntityRegistry()

	if err := Register(r); err != nil {
		panic(err)
	}

	return r
}
