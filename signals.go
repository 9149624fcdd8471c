package zha

import (
	"context"
	"errors"
	"github.com/shimmeringbee/callbacks"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
	"github.com/shimmeringbee/zigbee"
	"reflect"
)

// Assignment is an entity chosen for a set of claimed channels, created by the
// host when it handles EntityDiscovered.
type Assignment struct {
	Component rules.Component
	UniqueID  string
	Device    rules.Device
	Channels  []channel.Channel
	Factory   rules.Factory
}

func (a Assignment) Create() rules.Entity {
	return a.Factory(a.UniqueID, a.Device, a.Channels)
}

// EntityDiscovered is sent for each assignment of a newly discovered device.
type EntityDiscovered struct {
	Assignment Assignment
}

// DeviceEvent carries a command a device sent through a relay channel.
type DeviceEvent struct {
	IEEEAddress zigbee.IEEEAddress
	UniqueID    string
	EndpointID  zigbee.Endpoint
	Data        map[string]any
}

type AttributeUpdated struct {
	IEEEAddress zigbee.IEEEAddress
	UniqueID    string
	ChannelID   string
	ChannelName string
	AttributeID zcl.AttributeID
	Value       zcl.AttributeDataTypeValue
}

// Bus delivers signals to listeners registered by the host. Listeners are
// functions of the form func(context.Context, T) error for a signal type T. A
// failing listener does not stop delivery to those registered after it.
type Bus struct {
	callbacks callbacks.AdderCaller
}

func NewBus() *Bus {
	return &Bus{callbacks: callbacks.Create()}
}

type listenerFailuresKey struct{}

type listenerFailures struct {
	errs []error
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func (b *Bus) Listen(fn any) {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()

	if ft.Kind() != reflect.Func || ft.NumIn() != 2 || ft.NumOut() != 1 || ft.Out(0) != errorType {
		b.callbacks.Add(fn)
		return
	}

	isolated := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		out := fv.Call(in)

		if err, ok := out[0].Interface().(error); ok && err != nil {
			if failures, ok := in[0].Interface().(context.Context).Value(listenerFailuresKey{}).(*listenerFailures); ok {
				failures.errs = append(failures.errs, err)
			}
		}

		return []reflect.Value{reflect.Zero(errorType)}
	})

	b.callbacks.Add(isolated.Interface())
}

// send delivers signal to every listener of its type, returning the joined
// errors of any that failed.
func (b *Bus) send(ctx context.Context, signal any) error {
	failures := &listenerFailures{}

	if err := b.callbacks.Call(context.WithValue(ctx, listenerFailuresKey{}, failures), signal); err != nil {
		failures.errs = append(failures.errs, err)
	}

	return errors.Join(failures.errs...)
}
