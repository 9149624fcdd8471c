package channel

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zigbee"
)

const (
	BasicName              = "basic"
	ColorName              = "light_color"
	DoorLockName           = "door_lock"
	EventRelayName         = "event_relay"
	FanName                = "fan"
	HumidityName           = "humidity"
	IASZoneName            = "ias_zone"
	IdentifyName           = "identify"
	IlluminanceName        = "illuminance"
	LevelName              = "level"
	MultistateInputName    = "multistate_input"
	OccupancyName          = "occupancy"
	OnOffName              = "on_off"
	PowerConfigurationName = "power"
	PressureName           = "pressure"
	TemperatureName        = "temperature"
	WindowCoveringName     = "window_covering"
	ZDOName                = "zdo"
)

type Factory func(Cluster, Owner) Channel

// Registry maps cluster ids to their specialised channel.
var Registry = map[zigbee.ClusterID]Factory{
	zcl.BasicId:                       NewBasic,
	zcl.PowerConfigurationId:          NewPowerConfiguration,
	zcl.IdentifyId:                    NewIdentify,
	zcl.OnOffId:                       NewOnOff,
	zcl.LevelControlId:                NewLevelControl,
	MultistateInputId:                 NewMultistateInput,
	DoorLockId:                        NewDoorLock,
	WindowCoveringId:                  NewWindowCovering,
	FanControlId:                      NewFanControl,
	zcl.ColorControlId:                NewColorControl,
	IlluminanceMeasurementId:          NewIlluminanceMeasurement,
	zcl.TemperatureMeasurementId:      NewTemperatureMeasurement,
	zcl.PressureMeasurementId:         NewPressureMeasurement,
	zcl.RelativeHumidityMeasurementId: NewHumidityMeasurement,
	OccupancySensingId:                NewOccupancySensing,
	zcl.IASZoneId:                     NewIASZone,
}

// ChannelOnlyClusters are claimed without an entity, they only feed other channels.
var ChannelOnlyClusters = map[zigbee.ClusterID]struct{}{
	zcl.BasicId:    {},
	zcl.IdentifyId: {},
	PollControlId:  {},
	DiagnosticId:   {},
	LightLinkId:    {},
}

// EventRelayClusters are output clusters whose commands are relayed as device events.
var EventRelayClusters = []zigbee.ClusterID{
	zcl.OnOffId,
	zcl.LevelControlId,
	ScenesId,
	WindowCoveringId,
	zcl.ColorControlId,
	LightLinkId,
}

func IsChannelOnly(id zigbee.ClusterID) bool {
	_, ok := ChannelOnlyClusters[id]
	return ok
}

func IsEventRelay(id zigbee.ClusterID) bool {
	for _, c := range EventRelayClusters {
		if c == id {
			return true
		}
	}

	return false
}

// MisusedKind is the kind some vendors report for other clusters they use as a
// multistate input. Such clusters always get an AttributeListening channel.
const MisusedKind = "multistate_input"

func Misused(c Cluster) bool {
	return c.Kind == MisusedKind && c.ID != MultistateInputId
}

// New constructs the channel for a cluster.
func New(c Cluster, o Owner) Channel {
	if Misused(c) {
		return NewAttributeListening(c, o)
	}

	if f, ok := Registry[c.ID]; ok {
		return f(c, o)
	}

	return NewAttributeListening(c, o)
}
