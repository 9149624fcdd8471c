package zha

import (
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"log"
)

func (d *Discovery) WithGoLogger(parentLogger *log.Logger) {
	d.WithLogWrapLogger(logwrap.New(golog.Wrap(parentLogger)))
}

func (d *Discovery) WithLogWrapLogger(lw logwrap.Logger) {
	d.logger = lw
}
