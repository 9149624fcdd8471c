package channel

import (
	"fmt"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/zcl"
	"sync"
)

const cacheSection = "Cache"

const (
	dataTypeKey = "DataType"
	kindKey     = "Kind"
	valueKey    = "Value"
)

// cache holds the last known value of each attribute, mirrored into a persistence
// section so initialize from cache survives a restart.
type cache struct {
	m       *sync.RWMutex
	values  map[zcl.AttributeID]zcl.AttributeDataTypeValue
	section persistence.Section
}

func newCache(s persistence.Section) *cache {
	return &cache{
		m:       &sync.RWMutex{},
		values:  map[zcl.AttributeID]zcl.AttributeDataTypeValue{},
		section: s.Section(cacheSection),
	}
}

func attributeKey(id zcl.AttributeID) string {
	return fmt.Sprintf("0x%04x", id)
}

func (c *cache) get(id zcl.AttributeID) (zcl.AttributeDataTypeValue, bool) {
	c.m.RLock()
	v, ok := c.values[id]
	c.m.RUnlock()

	if ok {
		return v, true
	}

	if v, ok = c.load(id); ok {
		c.m.Lock()
		c.values[id] = v
		c.m.Unlock()
	}

	return v, ok
}

func (c *cache) set(id zcl.AttributeID, v zcl.AttributeDataTypeValue) {
	c.m.Lock()
	c.values[id] = v
	c.m.Unlock()

	c.store(id, v)
}

func (c *cache) store(id zcl.AttributeID, v zcl.AttributeDataTypeValue) {
	kind, value, ok := normalise(v.Value)
	if !ok {
		return
	}

	s := c.section.Section(attributeKey(id))
	s.Set(dataTypeKey, int(v.DataType))
	s.Set(kindKey, kind)
	s.Set(valueKey, value)
}

func (c *cache) load(id zcl.AttributeID) (zcl.AttributeDataTypeValue, bool) {
	s := c.section.Section(attributeKey(id))

	dt, ok := s.Int(dataTypeKey)
	if !ok {
		return zcl.AttributeDataTypeValue{}, false
	}

	kind, _ := s.String(kindKey)

	var value any

	switch kind {
	case "bool":
		value, ok = s.Bool(valueKey)
	case "string":
		value, ok = s.String(valueKey)
	case "int":
		var i int64
		i, ok = s.Int(valueKey)
		value = int64(i)
	case "uint":
		var i int64
		i, ok = s.Int(valueKey)
		value = uint64(i)
	case "float":
		value, ok = s.Float(valueKey)
	default:
		ok = false
	}

	if !ok {
		return zcl.AttributeDataTypeValue{}, false
	}

	return zcl.AttributeDataTypeValue{DataType: zcl.AttributeDataType(dt), Value: value}, true
}

func normalise(v any) (string, any, bool) {
	switch t := v.(type) {
	case bool:
		return "bool", t, true
	case string:
		return "string", t, true
	case int:
		return "int", t, true
	case int8:
		return "int", int(t), true
	case int16:
		return "int", int(t), true
	case int32:
		return "int", int(t), true
	case int64:
		return "int", int(t), true
	case uint:
		return "uint", int(t), true
	case uint8:
		return "uint", int(t), true
	case uint16:
		return "uint", int(t), true
	case uint32:
		return "uint", int(t), true
	case uint64:
		return "uint", int(t), true
	case float32:
		return "float", float64(t), true
	case float64:
		return "float", t, true
	}

	return "", nil, false
}

func asUint(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	case uint:
		return uint64(t), true
	case int64:
		if t >= 0 {
			return uint64(t), true
		}
	case int:
		if t >= 0 {
			return uint64(t), true
		}
	}

	return 0, false
}

func asInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	}

	if u, ok := asUint(v); ok {
		return int64(u), true
	}

	return 0, false
}
