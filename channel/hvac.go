package channel

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zha/attribute"
	"time"
)

const FanModeAttribute = zcl.AttributeID(0x0000)

const (
	FanModeOff    = uint8(0x00)
	FanModeLow    = uint8(0x01)
	FanModeMedium = uint8(0x02)
	FanModeHigh   = uint8(0x03)
	FanModeOn     = uint8(0x04)
	FanModeAuto   = uint8(0x05)
	FanModeSmart  = uint8(0x06)
)

type FanControl struct {
	*ClusterChannel
}

func NewFanControl(c Cluster, o Owner) Channel {
	ch := &FanControl{ClusterChannel: NewClusterChannel(c, o, FanName)}
	ch.Reports(attribute.Reported(FanModeAttribute, zcl.TypeEnum8, 0, 5*time.Minute, nil))
	return ch
}

func (f *FanControl) FanMode() (uint8, bool) {
	v, ok := f.uintAttribute(FanModeAttribute)
	return uint8(v), ok
}
