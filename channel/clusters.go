package channel

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zigbee"
)

const (
	GroupsId                 = zigbee.ClusterID(0x0004)
	ScenesId                 = zigbee.ClusterID(0x0005)
	AnalogInputId            = zigbee.ClusterID(0x000c)
	BinaryInputId            = zigbee.ClusterID(0x000f)
	MultistateInputId        = zigbee.ClusterID(0x0012)
	OTAId                    = zigbee.ClusterID(0x0019)
	PollControlId            = zigbee.ClusterID(0x0020)
	DoorLockId               = zigbee.ClusterID(0x0101)
	WindowCoveringId         = zigbee.ClusterID(0x0102)
	ThermostatId             = zigbee.ClusterID(0x0201)
	FanControlId             = zigbee.ClusterID(0x0202)
	IlluminanceMeasurementId = zigbee.ClusterID(0x0400)
	OccupancySensingId       = zigbee.ClusterID(0x0406)
	MeteringId               = zigbee.ClusterID(0x0702)
	ElectricalMeasurementId  = zigbee.ClusterID(0x0b04)
	DiagnosticId             = zigbee.ClusterID(0x0b05)
	LightLinkId              = zigbee.ClusterID(0x1000)
)

// Kind names of clusters in the standard library, keyed by cluster id.
var Kinds = map[zigbee.ClusterID]string{
	zcl.BasicId:                       "basic",
	zcl.PowerConfigurationId:          "power",
	zcl.IdentifyId:                    "identify",
	GroupsId:                          "groups",
	ScenesId:                          "scenes",
	zcl.OnOffId:                       "on_off",
	zcl.LevelControlId:                "level",
	AnalogInputId:                     "analog_input",
	BinaryInputId:                     "binary_input",
	MultistateInputId:                 "multistate_input",
	OTAId:                             "ota",
	PollControlId:                     "poll_control",
	DoorLockId:                        "door_lock",
	WindowCoveringId:                  "window_covering",
	ThermostatId:                      "thermostat",
	FanControlId:                      "fan",
	zcl.ColorControlId:                "light_color",
	IlluminanceMeasurementId:          "illuminance",
	zcl.TemperatureMeasurementId:      "temperature",
	zcl.PressureMeasurementId:         "pressure",
	zcl.RelativeHumidityMeasurementId: "humidity",
	OccupancySensingId:                "occupancy",
	zcl.IASZoneId:                     "ias_zone",
	zcl.IASWarningDevicesId:           "ias_wd",
	MeteringId:                        "smartenergy_metering",
	ElectricalMeasurementId:           "electrical_measurement",
	DiagnosticId:                      "diagnostic",
	LightLinkId:                       "lightlink",
}

// KindOf returns the standard kind of a cluster id, or an empty string for
// clusters the library does not know.
func KindOf(id zigbee.ClusterID) string {
	return Kinds[id]
}
