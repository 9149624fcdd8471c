package channel

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/local/color_control"
	"github.com/shimmeringbee/zha/attribute"
	"time"
)

const (
	ColorCapabilityHueSaturation    = uint16(0x0001)
	ColorCapabilityEnhancedHue      = uint16(0x0002)
	ColorCapabilityColorLoop        = uint16(0x0004)
	ColorCapabilityXY               = uint16(0x0008)
	ColorCapabilityColorTemperature = uint16(0x0010)
)

type ColorControl struct {
	*ClusterChannel
}

func NewColorControl(c Cluster, o Owner) Channel {
	ch := &ColorControl{ClusterChannel: NewClusterChannel(c, o, ColorName)}
	ch.Reads(color_control.ColorCapabilities, color_control.ColorMode)
	ch.Reports(
		attribute.Reported(color_control.CurrentX, zcl.TypeUnsignedInt16, time.Second, 5*time.Minute, uint(1)),
		attribute.Reported(color_control.CurrentY, zcl.TypeUnsignedInt16, time.Second, 5*time.Minute, uint(1)),
		attribute.Reported(color_control.ColorTemperatureMireds, zcl.TypeUnsignedInt16, time.Second, 5*time.Minute, uint(1)),
	)
	return ch
}

// Capabilities returns the color capability bitmap. Devices that do not report it
// are assumed to support XY, which every color light must.
func (c *ColorControl) Capabilities() uint16 {
	if v, ok := c.uintAttribute(color_control.ColorCapabilities); ok {
		return uint16(v)
	}

	return ColorCapabilityXY
}

func (c *ColorControl) ColorMode() (uint8, bool) {
	v, ok := c.uintAttribute(color_control.ColorMode)
	return uint8(v), ok
}

func (c *ColorControl) XY() (uint16, uint16, bool) {
	x, xOk := c.uintAttribute(color_control.CurrentX)
	y, yOk := c.uintAttribute(color_control.CurrentY)
	return uint16(x), uint16(y), xOk && yOk
}

func (c *ColorControl) ColorTemperature() (uint16, bool) {
	v, ok := c.uintAttribute(color_control.ColorTemperatureMireds)
	return uint16(v), ok
}
