package mqttrelay

import (
	"context"
	"encoding/json"
	"errors"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/shimmeringbee/da/capabilities"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/zha"
	"github.com/shimmeringbee/zha/entity"
	"github.com/shimmeringbee/zha/rules"
	"github.com/shimmeringbee/zigbee"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

type fakeToken struct {
	err      error
	complete bool
}

func (f *fakeToken) Wait() bool {
	return f.complete
}

func (f *fakeToken) WaitTimeout(time.Duration) bool {
	return f.complete
}

func (f *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if f.complete {
		close(ch)
	}
	return ch
}

func (f *fakeToken) Error() error {
	return f.err
}

type published struct {
	topic    string
	retained bool
	payload  []byte
}

type fakePublisher struct {
	token     *fakeToken
	published []published
}

func (f *fakePublisher) Publish(topic string, _ byte, retained bool, payload interface{}) mqtt.Token {
	f.published = append(f.published, published{topic: topic, retained: retained, payload: payload.([]byte)})
	return f.token
}

func TestRelay_EntityDiscovered(t *testing.T) {
	t.Run("publishes a retained entity description", func(t *testing.T) {
		fp := &fakePublisher{token: &fakeToken{complete: true}}
		r := New(fp, "", logwrap.New(discard.Discard()))

		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()

		err := r.EntityDiscovered(context.Background(), zha.EntityDiscovered{Assignment: zha.Assignment{
			Component: rules.Switch,
			UniqueID:  ieee.String() + "-1",
			Device:    rules.Device{IEEEAddress: ieee, Model: "plug"},
			Factory:   entity.NewSwitch,
		}})
		assert.NoError(t, err)

		if assert.Len(t, fp.published, 1) {
			assert.Equal(t, "zha/"+ieee.String()+"/entity/switch/"+ieee.String()+"-1", fp.published[0].topic)
			assert.True(t, fp.published[0].retained)

			var p map[string]any
			assert.NoError(t, json.Unmarshal(fp.published[0].payload, &p))
			assert.Equal(t, "plug", p["model"])
			assert.Equal(t, []any{capabilities.StandardNames[capabilities.OnOffFlag]}, p["capabilities"])
		}
	})
}

func TestRelay_DeviceEvent(t *testing.T) {
	t.Run("publishes device events to the event topic", func(t *testing.T) {
		fp := &fakePublisher{token: &fakeToken{complete: true}}
		r := New(fp, "home", logwrap.New(discard.Discard()))

		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()

		err := r.DeviceEvent(context.Background(), zha.DeviceEvent{IEEEAddress: ieee, Data: map[string]any{"command": "toggle"}})
		assert.NoError(t, err)

		if assert.Len(t, fp.published, 1) {
			assert.Equal(t, "home/"+ieee.String()+"/event", fp.published[0].topic)
			assert.False(t, fp.published[0].retained)
			assert.Contains(t, string(fp.published[0].payload), `"command":"toggle"`)
		}
	})

	t.Run("returns publish errors", func(t *testing.T) {
		fp := &fakePublisher{token: &fakeToken{complete: true, err: errors.New("failure")}}
		r := New(fp, "", logwrap.New(discard.Discard()))

		assert.Error(t, r.DeviceEvent(context.Background(), zha.DeviceEvent{}))
	})

	t.Run("times out when the broker does not acknowledge", func(t *testing.T) {
		fp := &fakePublisher{token: &fakeToken{}}
		r := New(fp, "", logwrap.New(discard.Discard()))

		assert.Error(t, r.DeviceEvent(context.Background(), zha.DeviceEvent{}))
	})
}
