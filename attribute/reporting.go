package attribute

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/persistence/converter"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zigbee"
	"math"
	"time"
)

const ReportingConfiguredKey = "ReportingConfigured"
const PollingConfiguredKey = "PollingConfigured"
const PollingIntervalKey = "PollingInterval"

type Reporter interface {
	ConfigureReporting(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID, code zigbee.ManufacturerCode, attribute zcl.AttributeID, dataType zcl.AttributeDataType, minimum uint16, maximum uint16, change any) error
}

// Target addresses a cluster on a remote endpoint.
type Target struct {
	Endpoint         zigbee.Endpoint
	Cluster          zigbee.ClusterID
	ManufacturerCode zigbee.ManufacturerCode
}

// Configure attempts to configure reporting of an attribute, recording the outcome
// in s. It returns true if the attribute should be polled instead. An error is only
// returned when reporting failed and the attribute may not be polled.
func Configure(ctx context.Context, r Reporter, s persistence.Section, t Target, a Attribute, l logwrap.Logger) (bool, error) {
	ctx, end := l.Segment(ctx, "Configuring attribute.", logwrap.Datum("ClusterID", t.Cluster), logwrap.Datum("AttributeID", a.ID))
	defer end()

	var reportingErr error

	if a.Reporting.Mode == AttemptConfigureReporting {
		min := uint16(math.Round(a.Reporting.MinimumInterval.Seconds()))
		max := uint16(math.Round(a.Reporting.MaximumInterval.Seconds()))

		if err := r.ConfigureReporting(ctx, t.Endpoint, t.Cluster, t.ManufacturerCode, a.ID, a.DataType, min, max, a.Reporting.ReportableChange); err != nil {
			l.LogWarn(ctx, "Configure reporting failed.", logwrap.Err(err))
			reportingErr = fmt.Errorf("configure reporting of 0x%04x/0x%04x: %w", t.Cluster, a.ID, err)
			s.Set(ReportingConfiguredKey, false)
		} else {
			l.LogDebug(ctx, "Reporting configured successfully.")
			s.Set(ReportingConfiguredKey, true)
		}
	}

	poll := (reportingErr != nil && a.Polling.Mode == PollIfReportingFailed) || a.Polling.Mode == AlwaysPoll
	s.Set(PollingConfiguredKey, poll)

	if poll {
		interval := a.Polling.Interval
		if interval <= 0 {
			interval = DefaultPollingInterval
		}

		converter.Store(s, PollingIntervalKey, interval, converter.DurationEncoder)
		l.LogInfo(ctx, "Polling configured.", logwrap.Datum("intervalMs", interval.Milliseconds()))
		return true, nil
	}

	return false, reportingErr
}

// PollingInterval returns the interval stored by Configure, and whether polling
// was configured at all.
func PollingInterval(s persistence.Section) (time.Duration, bool) {
	if v, ok := s.Bool(PollingConfiguredKey); !ok || !v {
		return 0, false
	}

	interval, _ := converter.Retrieve(s, PollingIntervalKey, converter.DurationDecoder, DefaultPollingInterval)
	return interval, true
}
