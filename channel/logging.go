package channel

import (
	"context"
	"github.com/shimmeringbee/logwrap"
)

// ChildLogger returns a logger that adds options to every message and then logs it
// through parent. Options added to a child are never seen by its siblings.
func ChildLogger(parent logwrap.Logger, options ...logwrap.Option) logwrap.Logger {
	l := logwrap.New(func(ctx context.Context, m logwrap.Message) {
		opts := []logwrap.Option{logwrap.Level(m.Level), logwrap.Data(m.Data)}

		if m.Source != "" {
			opts = append(opts, logwrap.Source(m.Source))
		}

		parent.Log(ctx, m.Message, opts...)
	})

	l.AddOptionsToLogger(options...)

	return l
}
