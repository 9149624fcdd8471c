package channel

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/local/basic"
	"github.com/shimmeringbee/zcl/commands/local/identify"
	"github.com/shimmeringbee/zcl/commands/local/level"
	"github.com/shimmeringbee/zcl/commands/local/onoff"
	"github.com/shimmeringbee/zcl/commands/local/power_configuration"
	"github.com/shimmeringbee/zha/attribute"
	"time"
)

type Basic struct {
	*ClusterChannel
}

func NewBasic(c Cluster, o Owner) Channel {
	ch := &Basic{ClusterChannel: NewClusterChannel(c, o, BasicName)}
	ch.Reads(basic.ManufacturerName, basic.ModelIdentifier, basic.PowerSource)
	return ch
}

func (b *Basic) Manufacturer() (string, bool) {
	return b.stringAttribute(basic.ManufacturerName)
}

func (b *Basic) Model() (string, bool) {
	return b.stringAttribute(basic.ModelIdentifier)
}

func (b *Basic) PowerSource() (uint8, bool) {
	v, ok := b.uintAttribute(basic.PowerSource)
	return uint8(v), ok
}

// MainsPowered reports if the cached power source is mains, the second bool is
// false if the power source has not been read.
func (b *Basic) MainsPowered() (bool, bool) {
	v, ok := b.PowerSource()
	if !ok {
		return false, false
	}

	return IsMainsPowerSource(uint64(v)), true
}

// IsMainsPowerSource interprets a Basic cluster PowerSource value, ignoring the
// secondary battery bit.
func IsMainsPowerSource(v uint64) bool {
	switch v & 0x0f {
	case 0x01, 0x02, 0x04, 0x05, 0x06:
		return true
	}

	return false
}

type PowerConfiguration struct {
	*ClusterChannel
}

func NewPowerConfiguration(c Cluster, o Owner) Channel {
	ch := &PowerConfiguration{ClusterChannel: NewClusterChannel(c, o, PowerConfigurationName)}
	ch.Reports(
		attribute.Reported(power_configuration.BatteryVoltage, zcl.TypeUnsignedInt8, time.Minute, 5*time.Minute, uint(1)),
		attribute.Reported(power_configuration.BatteryPercentageRemaining, zcl.TypeUnsignedInt8, time.Minute, 5*time.Minute, uint(1)),
	)
	return ch
}

// BatteryVoltage in volts.
func (p *PowerConfiguration) BatteryVoltage() (float64, bool) {
	v, ok := p.uintAttribute(power_configuration.BatteryVoltage)
	return float64(v) / 10.0, ok
}

// BatteryPercentage in the range 0-100, the device reports in half percent steps.
func (p *PowerConfiguration) BatteryPercentage() (float64, bool) {
	v, ok := p.uintAttribute(power_configuration.BatteryPercentageRemaining)
	return float64(v) / 2.0, ok
}

type Identify struct {
	*ClusterChannel
}

func NewIdentify(c Cluster, o Owner) Channel {
	ch := &Identify{ClusterChannel: NewClusterChannel(c, o, IdentifyName)}
	ch.Reads(identify.IdentifyTime)
	return ch
}

func (i *Identify) Identifying() bool {
	v, ok := i.uintAttribute(identify.IdentifyTime)
	return ok && v > 0
}

type OnOff struct {
	*ClusterChannel
}

func NewOnOff(c Cluster, o Owner) Channel {
	ch := &OnOff{ClusterChannel: NewClusterChannel(c, o, OnOffName)}
	ch.Reports(attribute.Reported(onoff.OnOff, zcl.TypeBoolean, 0, time.Minute, nil))
	return ch
}

func (o *OnOff) State() (bool, bool) {
	return o.boolAttribute(onoff.OnOff)
}

type LevelControl struct {
	*ClusterChannel
}

func NewLevelControl(c Cluster, o Owner) Channel {
	ch := &LevelControl{ClusterChannel: NewClusterChannel(c, o, LevelName)}
	ch.Reports(attribute.Reported(level.CurrentLevel, zcl.TypeUnsignedInt8, time.Second, 5*time.Minute, uint(1)))
	return ch
}

func (l *LevelControl) CurrentLevel() (uint8, bool) {
	v, ok := l.uintAttribute(level.CurrentLevel)
	return uint8(v), ok
}

const PresentValueAttribute = zcl.AttributeID(0x0055)

type MultistateInput struct {
	*ClusterChannel
}

func NewMultistateInput(c Cluster, o Owner) Channel {
	ch := &MultistateInput{ClusterChannel: NewClusterChannel(c, o, MultistateInputName)}
	ch.Reports(attribute.Reported(PresentValueAttribute, zcl.TypeUnsignedInt16, 0, 5*time.Minute, uint(1)))
	return ch
}

func (m *MultistateInput) PresentValue() (uint16, bool) {
	v, ok := m.uintAttribute(PresentValueAttribute)
	return uint16(v), ok
}
