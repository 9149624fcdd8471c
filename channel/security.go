package channel

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/local/ias_zone"
)

const (
	ZoneStatusAlarm1 = uint16(0x0001)
	ZoneStatusAlarm2 = uint16(0x0002)
	ZoneStatusTamper = uint16(0x0004)
)

const ZoneTypeAttribute = zcl.AttributeID(0x0001)

type IASZone struct {
	*ClusterChannel
}

func NewIASZone(c Cluster, o Owner) Channel {
	ch := &IASZone{ClusterChannel: NewClusterChannel(c, o, IASZoneName)}
	ch.Reads(ias_zone.ZoneState, ZoneTypeAttribute, ias_zone.ZoneStatus)
	return ch
}

func (i *IASZone) ZoneType() (uint16, bool) {
	v, ok := i.uintAttribute(ZoneTypeAttribute)
	return uint16(v), ok
}

func (i *IASZone) ZoneStatus() (uint16, bool) {
	v, ok := i.uintAttribute(ias_zone.ZoneStatus)
	return uint16(v), ok
}

func (i *IASZone) Alarmed() bool {
	v, ok := i.ZoneStatus()
	return ok && v&(ZoneStatusAlarm1|ZoneStatusAlarm2) != 0
}
