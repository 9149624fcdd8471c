package channel

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zha/attribute"
	"time"
)

const (
	LockStateAttribute                     = zcl.AttributeID(0x0000)
	CurrentPositionLiftPercentageAttribute = zcl.AttributeID(0x0008)
)

const (
	LockStateNotFullyLocked = uint8(0x00)
	LockStateLocked         = uint8(0x01)
	LockStateUnlocked       = uint8(0x02)
)

type DoorLock struct {
	*ClusterChannel
}

func NewDoorLock(c Cluster, o Owner) Channel {
	ch := &DoorLock{ClusterChannel: NewClusterChannel(c, o, DoorLockName)}
	ch.Reports(attribute.Reported(LockStateAttribute, zcl.TypeEnum8, 0, time.Hour, nil))
	return ch
}

func (d *DoorLock) LockState() (uint8, bool) {
	v, ok := d.uintAttribute(LockStateAttribute)
	return uint8(v), ok
}

type WindowCovering struct {
	*ClusterChannel
}

func NewWindowCovering(c Cluster, o Owner) Channel {
	ch := &WindowCovering{ClusterChannel: NewClusterChannel(c, o, WindowCoveringName)}
	ch.Reports(attribute.Reported(CurrentPositionLiftPercentageAttribute, zcl.TypeUnsignedInt8, 0, 5*time.Minute, uint(1)))
	return ch
}

// LiftPercentage is how far closed the covering is, 0 is fully open.
func (w *WindowCovering) LiftPercentage() (uint8, bool) {
	v, ok := w.uintAttribute(CurrentPositionLiftPercentageAttribute)
	return uint8(v), ok
}
