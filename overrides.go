package zha

import (
	"fmt"
	"github.com/shimmeringbee/zha/rules"
	"gopkg.in/yaml.v3"
	"io"
	"sync"
)

// DeviceOverride replaces the component an endpoint would be matched as.
type DeviceOverride struct {
	Type rules.Component `yaml:"type"`
}

// DeviceOverrides is keyed by endpoint unique id, "{ieee}-{endpoint}". Discovery
// only ever reads it.
type DeviceOverrides struct {
	m       *sync.RWMutex
	entries map[string]DeviceOverride
}

func NewDeviceOverrides() *DeviceOverrides {
	return &DeviceOverrides{m: &sync.RWMutex{}, entries: map[string]DeviceOverride{}}
}

// LoadDeviceOverrides parses a YAML mapping of endpoint unique id to override.
func LoadDeviceOverrides(r io.Reader) (map[string]DeviceOverride, error) {
	entries := map[string]DeviceOverride{}

	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode device overrides: %w", err)
	}

	return entries, nil
}

// Update merges entries into the overrides, replacing existing keys.
func (o *DeviceOverrides) Update(entries map[string]DeviceOverride) {
	o.m.Lock()
	defer o.m.Unlock()

	for k, v := range entries {
		o.entries[k] = v
	}
}

func (o *DeviceOverrides) Lookup(key string) (DeviceOverride, bool) {
	if o == nil {
		return DeviceOverride{}, false
	}

	o.m.RLock()
	defer o.m.RUnlock()

	v, ok := o.entries[key]
	return v, ok
}
