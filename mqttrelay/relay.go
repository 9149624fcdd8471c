// Package mqttrelay publishes discovery signals to an MQTT broker.
package mqttrelay

import (
	"context"
	"encoding/json"
	"fmt"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/zha"
	"github.com/shimmeringbee/zha/entity"
	"time"
)

const DefaultPrefix = "zha"
const DefaultPublishTimeout = 5 * time.Second

// Publisher is the part of an MQTT client the relay publishes through.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type Relay struct {
	publisher Publisher
	prefix    string
	timeout   time.Duration
	logger    logwrap.Logger
}

func New(p Publisher, prefix string, l logwrap.Logger) *Relay {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Relay{publisher: p, prefix: prefix, timeout: DefaultPublishTimeout, logger: l}
}

// Connect returns a connected paho client, auto reconnecting after the first
// connection succeeds.
func Connect(broker string, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()

	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout")
	}

	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}

	return client, nil
}

// Attach subscribes the relay to new entity and device event signals.
func (r *Relay) Attach(b *zha.Bus) {
	b.Listen(r.EntityDiscovered)
	b.Listen(r.DeviceEvent)
}

type entityPayload struct {
	UniqueID     string   `json:"unique_id"`
	Component    string   `json:"component"`
	DeviceIEEE   string   `json:"device_ieee"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Model        string   `json:"model,omitempty"`
	Channels     []string `json:"channels"`
	Capabilities []string `json:"capabilities,omitempty"`
}

func (r *Relay) EntityDiscovered(ctx context.Context, e zha.EntityDiscovered) error {
	a := e.Assignment

	p := entityPayload{
		UniqueID:     a.UniqueID,
		Component:    string(a.Component),
		DeviceIEEE:   a.Device.IEEEAddress.String(),
		Manufacturer: a.Device.Manufacturer,
		Model:        a.Device.Model,
		Capabilities: entity.CapabilityNames(a.Create()),
	}

	for _, ch := range a.Channels {
		p.Channels = append(p.Channels, ch.ID())
	}

	topic := fmt.Sprintf("%s/%s/entity/%s/%s", r.prefix, p.DeviceIEEE, p.Component, p.UniqueID)

	return r.publish(ctx, topic, true, p)
}

func (r *Relay) DeviceEvent(ctx context.Context, e zha.DeviceEvent) error {
	data := make(map[string]any, len(e.Data)+1)
	for k, v := range e.Data {
		data[k] = v
	}

	data["device_ieee"] = e.IEEEAddress.String()

	return r.publish(ctx, fmt.Sprintf("%s/%s/event", r.prefix, e.IEEEAddress), false, data)
}

func (r *Relay) publish(ctx context.Context, topic string, retained bool, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", topic, err)
	}

	token := r.publisher.Publish(topic, 1, retained, payload)

	if !token.WaitTimeout(r.timeout) {
		r.logger.LogWarn(ctx, "Timed out publishing to MQTT.", logwrap.Datum("Topic", topic))
		return fmt.Errorf("publish %s: timeout", topic)
	}

	if err := token.Error(); err != nil {
		r.logger.LogWarn(ctx, "Failed to publish to MQTT.", logwrap.Datum("Topic", topic), logwrap.Err(err))
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	r.logger.LogTrace(ctx, "Published to MQTT.", logwrap.Datum("Topic", topic))

	return nil
}
