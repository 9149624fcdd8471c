package channel

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/stretchr/testify/assert"
	"testing"
)

type recordedLogs struct {
	messages []logwrap.Message
}

func (r *recordedLogs) impl(_ context.Context, m logwrap.Message) {
	r.messages = append(r.messages, m)
}

func TestChildLogger(t *testing.T) {
	t.Run("adds its options and keeps the level and message", func(t *testing.T) {
		rec := &recordedLogs{}
		parent := logwrap.New(rec.impl)
		parent.AddOptionsToLogger(logwrap.Datum("Parent", 1))

		child := ChildLogger(parent, logwrap.Datum("Child", 2))
		child.LogWarn(context.Background(), "warning", logwrap.Datum("Call", 3))

		if assert.Len(t, rec.messages, 1) {
			m := rec.messages[0]
			assert.Equal(t, "warning", m.Message)
			assert.Equal(t, logwrap.Warn, m.Level)
			assert.Equal(t, 1, m.Data["Parent"])
			assert.Equal(t, 2, m.Data["Child"])
			assert.Equal(t, 3, m.Data["Call"])
		}
	})

	t.Run("siblings do not share options even when the parent has spare capacity", func(t *testing.T) {
		rec := &recordedLogs{}
		parent := logwrap.New(rec.impl)
		parent.AddOptionsToLogger(logwrap.Datum("A", 1))
		parent.AddOptionsToLogger(logwrap.Datum("B", 2))
		parent.AddOptionsToLogger(logwrap.Datum("C", 3))

		first := ChildLogger(parent, logwrap.Datum("Device", "first"))
		second := ChildLogger(parent, logwrap.Datum("Device", "second"))

		first.LogInfo(context.Background(), "first")
		second.LogInfo(context.Background(), "second")

		if assert.Len(t, rec.messages, 2) {
			assert.Equal(t, "first", rec.messages[0].Data["Device"])
			assert.Equal(t, "second", rec.messages[1].Data["Device"])
		}
	})

	t.Run("context options of the parent still apply", func(t *testing.T) {
		rec := &recordedLogs{}
		parent := logwrap.New(rec.impl)

		ctx, end := parent.Segment(context.Background(), "segment")
		ChildLogger(parent).LogInfo(ctx, "inside")
		end()

		if assert.Len(t, rec.messages, 3) {
			assert.Contains(t, rec.messages[1].Data, logwrap.SegmentIDField)
		}
	})
}
