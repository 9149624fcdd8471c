package rules

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zigbee"
)

const ProfileLightLink = zigbee.ProfileID(0xc05e)

// DeviceClasses maps a profile and device type to the component an endpoint of
// that type becomes.
var DeviceClasses = map[zigbee.ProfileID]map[uint16]Component{
	zigbee.ProfileHomeAutomation: {
		0x0002: Switch, // on/off output
		0x0003: Light,  // level controllable output
		0x0009: Switch, // mains power outlet
		0x000a: Lock,   // door lock
		0x0051: Switch, // smart plug
		0x0100: Light,  // on/off light
		0x0101: Light,  // dimmable light
		0x0102: Light,  // color dimmable light
		0x0105: Light,
		0x0108: Switch, // on/off ballast
		0x0109: Light,  // dimmable ballast
		0x010a: Switch, // on/off plug-in unit
		0x010b: Light,  // dimmable plug-in unit
		0x010c: Light,  // color temperature light
		0x010d: Light,  // extended color light
		0x0202: Cover,  // window covering device
	},
	ProfileLightLink: {
		0x0000: Light,
		0x0010: Switch,
		0x0100: Light,
		0x0110: Light,
		0x0200: Light,
		0x0210: Light,
		0x0220: Light,
	},
}

// RemoteDeviceTypes are device types that only control other devices. Their
// output clusters never become entities.
var RemoteDeviceTypes = map[zigbee.ProfileID]map[uint16]struct{}{
	zigbee.ProfileHomeAutomation: {
		0x0000: {}, // on/off switch
		0x0004: {}, // scene selector
		0x0006: {}, // remote control
		0x0103: {}, // on/off light switch
		0x0104: {}, // dimmer switch
		0x0800: {}, // color controller
		0x0810: {}, // color scene controller
		0x0820: {}, // non color controller
		0x0830: {}, // non color scene controller
	},
	ProfileLightLink: {
		0x0800: {},
		0x0810: {},
		0x0820: {},
		0x0830: {},
	},
}

// SingleInputByKind maps a cluster kind to the component a lone input cluster
// of that kind becomes, consulted before SingleInputByID.
var SingleInputByKind = map[string]Component{
	"analog_input":     Sensor,
	"binary_input":     BinarySensor,
	"ias_zone":         BinarySensor,
	"multistate_input": Sensor,
	"occupancy":        BinarySensor,
}

var SingleInputByID = map[zigbee.ClusterID]Component{
	zcl.PowerConfigurationId:          Sensor,
	zcl.OnOffId:                       Switch,
	channel.DoorLockId:                Lock,
	channel.WindowCoveringId:          Cover,
	channel.FanControlId:              Fan,
	channel.IlluminanceMeasurementId:  Sensor,
	zcl.TemperatureMeasurementId:      Sensor,
	zcl.PressureMeasurementId:         Sensor,
	zcl.RelativeHumidityMeasurementId: Sensor,
	channel.OccupancySensingId:        BinarySensor,
	zcl.IASZoneId:                     BinarySensor,
	channel.MeteringId:                Sensor,
	channel.ElectricalMeasurementId:   Sensor,
}

var SingleOutputByKind = map[string]Component{
	"on_off": BinarySensor,
}

var SingleOutputByID = map[zigbee.ClusterID]Component{
	zcl.OnOffId: BinarySensor,
}

func DeviceClass(profile zigbee.ProfileID, deviceType uint16) (Component, bool) {
	c, ok := DeviceClasses[profile][deviceType]
	return c, ok
}

func IsRemote(profile zigbee.ProfileID, deviceType uint16) bool {
	_, ok := RemoteDeviceTypes[profile][deviceType]
	return ok
}

// SingleInputComponent looks up the component for a lone input cluster, by kind
// first and then by id.
func SingleInputComponent(c channel.Cluster) (Component, bool) {
	return singleComponent(c, SingleInputByKind, SingleInputByID)
}

func SingleOutputComponent(c channel.Cluster) (Component, bool) {
	return singleComponent(c, SingleOutputByKind, SingleOutputByID)
}

func singleComponent(c channel.Cluster, byKind map[string]Component, byID map[zigbee.ClusterID]Component) (Component, bool) {
	if c.Kind != "" {
		if comp, ok := byKind[c.Kind]; ok {
			return comp, true
		}
	}

	comp, ok := byID[c.ID]
	return comp, ok
}
