package channel

import (
	"context"
	"github.com/shimmeringbee/zcl"
)

// EventRelay wraps an output cluster. It never holds state, it forwards commands
// the device sends as device events.
type EventRelay struct {
	*ClusterChannel
}

func NewEventRelay(c Cluster, o Owner) Channel {
	c.Direction = Out
	return &EventRelay{ClusterChannel: NewClusterChannel(c, o, EventRelayName)}
}

func (e *EventRelay) Initialize(_ context.Context, _ bool) error {
	return nil
}

func (e *EventRelay) HandleMessage(ctx context.Context, m zcl.Message) {
	if m.FrameType != zcl.FrameLocal {
		return
	}

	e.owner.SendEvent(ctx, CommandEvent(e.cluster, m))
}
