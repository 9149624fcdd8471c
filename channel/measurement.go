package channel

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/local/pressure_measurement"
	"github.com/shimmeringbee/zcl/commands/local/relative_humidity_measurement"
	"github.com/shimmeringbee/zcl/commands/local/temperature_measurement"
	"github.com/shimmeringbee/zha/attribute"
	"time"
)

const (
	IlluminanceMeasuredValue = zcl.AttributeID(0x0000)
	OccupancyAttribute       = zcl.AttributeID(0x0000)
)

// Measurement is a sensor cluster reporting a single measured value.
type Measurement struct {
	*ClusterChannel
	value zcl.AttributeID
}

func newMeasurement(c Cluster, o Owner, name string, a attribute.Attribute) *Measurement {
	ch := &Measurement{ClusterChannel: NewClusterChannel(c, o, name), value: a.ID}
	ch.Reports(a)
	return ch
}

func NewTemperatureMeasurement(c Cluster, o Owner) Channel {
	return newMeasurement(c, o, TemperatureName, attribute.Reported(temperature_measurement.MeasuredValue, zcl.TypeSignedInt16, 30*time.Second, 5*time.Minute, 50))
}

func NewPressureMeasurement(c Cluster, o Owner) Channel {
	return newMeasurement(c, o, PressureName, attribute.Reported(pressure_measurement.MeasuredValue, zcl.TypeSignedInt16, 30*time.Second, 5*time.Minute, 1))
}

func NewHumidityMeasurement(c Cluster, o Owner) Channel {
	return newMeasurement(c, o, HumidityName, attribute.Reported(relative_humidity_measurement.MeasuredValue, zcl.TypeUnsignedInt16, 30*time.Second, 5*time.Minute, uint(50)))
}

func NewIlluminanceMeasurement(c Cluster, o Owner) Channel {
	return newMeasurement(c, o, IlluminanceName, attribute.Reported(IlluminanceMeasuredValue, zcl.TypeUnsignedInt16, 30*time.Second, 5*time.Minute, uint(10)))
}

func NewOccupancySensing(c Cluster, o Owner) Channel {
	return newMeasurement(c, o, OccupancyName, attribute.Reported(OccupancyAttribute, zcl.TypeBitmap8, 0, 10*time.Minute, nil))
}

// Value returns the raw measured value, scaling is the consumer's concern.
func (m *Measurement) Value() (int64, bool) {
	return m.intAttribute(m.value)
}
