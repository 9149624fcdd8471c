package channel

import (
	"context"
	"errors"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zha/attribute"
	"github.com/shimmeringbee/zigbee"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"
)

// ClusterChannel is the shared implementation of every cluster channel. It reads a
// declared attribute set on initialize, binds and configures reporting on configure
// and caches every value it sees.
type ClusterChannel struct {
	cluster Cluster
	owner   Owner
	name    string
	logger  logwrap.Logger

	reads   []zcl.AttributeID
	reports []attribute.Attribute

	section persistence.Section
	cache   *cache

	m      *sync.Mutex
	poller *attribute.Poller
}

var _ Channel = (*ClusterChannel)(nil)

func NewClusterChannel(c Cluster, o Owner, name string) *ClusterChannel {
	id := c.ChannelID()

	l := ChildLogger(o.Logger(), logwrap.Datum("Channel", id), logwrap.Datum("ChannelName", name))

	s := o.Section(id)

	return &ClusterChannel{
		cluster: c,
		owner:   o,
		name:    name,
		logger:  l,
		section: s,
		cache:   newCache(s),
		m:       &sync.Mutex{},
	}
}

func (c *ClusterChannel) ID() string {
	return c.cluster.ChannelID()
}

func (c *ClusterChannel) Name() string {
	return c.name
}

func (c *ClusterChannel) Cluster() Cluster {
	return c.cluster
}

func (c *ClusterChannel) Owner() Owner {
	return c.owner
}

// Reads adds attributes read during initialize.
func (c *ClusterChannel) Reads(ids ...zcl.AttributeID) {
	for _, id := range ids {
		if !containsAttribute(c.reads, id) {
			c.reads = append(c.reads, id)
		}
	}
}

// Reports adds attributes to configure reporting for, they are also read during
// initialize.
func (c *ClusterChannel) Reports(attrs ...attribute.Attribute) {
	for _, a := range attrs {
		c.reports = append(c.reports, a)
		c.Reads(a.ID)
	}
}

func (c *ClusterChannel) manufacturerCode() zigbee.ManufacturerCode {
	if c.cluster.ManufacturerSpecific() {
		return c.owner.ManufacturerCode()
	}

	return zigbee.NoManufacturer
}

func (c *ClusterChannel) target() attribute.Target {
	return attribute.Target{
		Endpoint:         c.cluster.Endpoint,
		Cluster:          c.cluster.ID,
		ManufacturerCode: c.manufacturerCode(),
	}
}

func (c *ClusterChannel) Initialize(ctx context.Context, fromCache bool) error {
	if c.cluster.Direction == Out {
		return nil
	}

	_, err := c.GetAttributes(ctx, c.reads, fromCache)
	return err
}

// GetAttributes returns the values of the requested attributes. With fromCache set
// only attributes missing from the cache are read from the device. Attributes the
// device does not support are absent from the result.
func (c *ClusterChannel) GetAttributes(ctx context.Context, ids []zcl.AttributeID, fromCache bool) (map[zcl.AttributeID]zcl.AttributeDataTypeValue, error) {
	result := map[zcl.AttributeID]zcl.AttributeDataTypeValue{}
	var missing []zcl.AttributeID

	for _, id := range ids {
		if fromCache {
			if v, ok := c.cache.get(id); ok {
				result[id] = v
				continue
			}
		}

		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	rs, err := c.owner.Transport().ReadAttributes(ctx, c.cluster.Endpoint, c.cluster.ID, c.manufacturerCode(), missing)
	if err != nil {
		return result, fmt.Errorf("read attributes from %s: %w", c.ID(), err)
	}

	records := attribute.FromReadResponse(rs)
	for _, r := range records {
		result[r.ID] = r.Value
	}

	c.update(ctx, records)

	return result, nil
}

func (c *ClusterChannel) Configure(ctx context.Context) error {
	t := c.owner.Transport()

	var errs []error

	if err := t.Bind(ctx, c.cluster.Endpoint, c.cluster.ID); err != nil {
		c.logger.LogWarn(ctx, "Failed to bind cluster.", logwrap.Err(err))
		errs = append(errs, fmt.Errorf("bind %s: %w", c.ID(), err))
	}

	if c.cluster.Direction == Out {
		return errors.Join(errs...)
	}

	var polled []zcl.AttributeID
	var interval time.Duration

	for _, a := range c.reports {
		s := c.section.Section("Attribute", attributeKey(a.ID))

		poll, err := attribute.Configure(ctx, t, s, c.target(), a, c.logger)
		if err != nil {
			errs = append(errs, err)
		}

		if poll {
			polled = append(polled, a.ID)

			if pi, _ := attribute.PollingInterval(s); interval == 0 || pi < interval {
				interval = pi
			}
		}
	}

	if len(polled) > 0 {
		c.startPolling(ctx, polled, interval)
	}

	return errors.Join(errs...)
}

func (c *ClusterChannel) startPolling(ctx context.Context, ids []zcl.AttributeID, interval time.Duration) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.poller != nil {
		c.poller.Stop()
	}

	c.poller = attribute.NewPoller(c.owner.Transport(), c.target(), ids, interval, c.update, c.logger)
	c.poller.Start(ctx)
}

// Polling reports if any attribute of the channel is being polled.
func (c *ClusterChannel) Polling() bool {
	c.m.Lock()
	defer c.m.Unlock()

	return c.poller != nil && c.poller.Running()
}

// Close stops any attribute polling.
func (c *ClusterChannel) Close() {
	c.m.Lock()
	defer c.m.Unlock()

	if c.poller != nil {
		c.poller.Stop()
		c.poller = nil
	}
}

func (c *ClusterChannel) HandleMessage(ctx context.Context, m zcl.Message) {
	if records, ok := attribute.FromMessage(m); ok {
		c.update(ctx, records)
		return
	}

	if m.FrameType == zcl.FrameLocal && c.cluster.Direction == Out {
		c.owner.SendEvent(ctx, CommandEvent(c.cluster, m))
	}
}

func (c *ClusterChannel) Attribute(id zcl.AttributeID) (zcl.AttributeDataTypeValue, bool) {
	return c.cache.get(id)
}

func (c *ClusterChannel) update(ctx context.Context, records []attribute.Record) {
	for _, r := range records {
		c.cache.set(r.ID, r.Value)
		c.logger.LogTrace(ctx, "Attribute updated.", logwrap.Datum("AttributeID", r.ID), logwrap.Datum("Value", r.Value.Value))
		c.owner.AttributeUpdated(ctx, c, r.ID, r.Value)
	}
}

func (c *ClusterChannel) uintAttribute(id zcl.AttributeID) (uint64, bool) {
	if v, ok := c.cache.get(id); ok {
		return asUint(v.Value)
	}

	return 0, false
}

func (c *ClusterChannel) intAttribute(id zcl.AttributeID) (int64, bool) {
	if v, ok := c.cache.get(id); ok {
		return asInt(v.Value)
	}

	return 0, false
}

func (c *ClusterChannel) boolAttribute(id zcl.AttributeID) (bool, bool) {
	if v, ok := c.cache.get(id); ok {
		b, ok := v.Value.(bool)
		return b, ok
	}

	return false, false
}

func (c *ClusterChannel) stringAttribute(id zcl.AttributeID) (string, bool) {
	if v, ok := c.cache.get(id); ok {
		s, ok := v.Value.(string)
		return s, ok
	}

	return "", false
}

// CommandEvent builds the device event payload for a cluster command received
// from a device.
func CommandEvent(c Cluster, m zcl.Message) map[string]any {
	return map[string]any{
		"cluster_id": int(c.ID),
		"command":    CommandName(m.Command),
		"args":       m.Command,
	}
}

// CommandName converts the type name of a decoded command into snake case,
// *level.MoveToLevelWithOnOff becomes move_to_level_with_on_off.
func CommandName(cmd any) string {
	if cmd == nil {
		return ""
	}

	t := reflect.TypeOf(cmd)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var sb strings.Builder
	runes := []rune(t.Name())

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				sb.WriteRune('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

func containsAttribute(haystack []zcl.AttributeID, needle zcl.AttributeID) bool {
	for _, straw := range haystack {
		if straw == needle {
			return true
		}
	}

	return false
}
