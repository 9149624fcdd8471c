package rules

type Component string

const (
	BinarySensor  Component = "binary_sensor"
	Cover         Component = "cover"
	DeviceTracker Component = "device_tracker"
	Fan           Component = "fan"
	Light         Component = "light"
	Lock          Component = "lock"
	Sensor        Component = "sensor"
	Switch        Component = "switch"
)

// Components lists every supported component kind.
var Components = []Component{BinarySensor, Cover, DeviceTracker, Fan, Light, Lock, Sensor, Switch}

func (c Component) Supported() bool {
	for _, s := range Components {
		if s == c {
			return true
		}
	}

	return false
}
