package attribute

import (
	"github.com/shimmeringbee/zcl"
	"time"
)

type PollingMode int

const (
	PollIfReportingFailed PollingMode = iota
	AlwaysPoll
	NeverPoll
)

type PollingConfig struct {
	Mode     PollingMode
	Interval time.Duration
}

type ReportingMode int

const (
	AttemptConfigureReporting ReportingMode = iota
	NeverConfigureReporting
)

type ReportingConfig struct {
	Mode             ReportingMode
	MinimumInterval  time.Duration
	MaximumInterval  time.Duration
	ReportableChange any
}

// Attribute is one attribute a channel wants kept up to date by the device.
type Attribute struct {
	ID        zcl.AttributeID
	DataType  zcl.AttributeDataType
	Reporting ReportingConfig
	Polling   PollingConfig
}

const DefaultPollingInterval = 5 * time.Minute

// Reported builds an attribute that attempts reporting between min and max, and
// falls back to polling at max if the device refuses.
func Reported(id zcl.AttributeID, dt zcl.AttributeDataType, min time.Duration, max time.Duration, change any) Attribute {
	return Attribute{
		ID:       id,
		DataType: dt,
		Reporting: ReportingConfig{
			Mode:             AttemptConfigureReporting,
			MinimumInterval:  min,
			MaximumInterval:  max,
			ReportableChange: change,
		},
		Polling: PollingConfig{
			Mode:     PollIfReportingFailed,
			Interval: max,
		},
	}
}
