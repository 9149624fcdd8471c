package attribute

import (
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/global"
)

type Record struct {
	ID    zcl.AttributeID
	Value zcl.AttributeDataTypeValue
}

// FromMessage extracts attribute values from an attribute report or a read
// attributes response. The bool is false for any other command.
func FromMessage(m zcl.Message) ([]Record, bool) {
	switch cmd := m.Command.(type) {
	case *global.ReportAttributes:
		var records []Record

		for _, r := range cmd.Records {
			if r.DataTypeValue != nil {
				records = append(records, Record{ID: r.Identifier, Value: *r.DataTypeValue})
			}
		}

		return records, true
	case *global.ReadAttributesResponse:
		return FromReadResponse(cmd.Records), true
	}

	return nil, false
}

// FromReadResponse returns the successfully read values of a read attributes response.
func FromReadResponse(rs []global.ReadAttributeResponseRecord) []Record {
	var records []Record

	for _, r := range rs {
		if r.Status == 0 && r.DataTypeValue != nil {
			records = append(records, Record{ID: r.Identifier, Value: *r.DataTypeValue})
		}
	}

	return records
}
