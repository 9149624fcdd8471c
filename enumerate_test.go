package zha

import (
	"context"
	"errors"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/global"
	"github.com/shimmeringbee/zcl/commands/local/basic"
	"github.com/shimmeringbee/zha/mocks"
	"github.com/shimmeringbee/zigbee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
)

func TestEnumerator_Enumerate(t *testing.T) {
	t.Run("builds a device from its node description, endpoints and basic cluster", func(t *testing.T) {
		mp := &zigbee.MockProvider{}
		defer mp.AssertExpectations(t)

		mzc := &mocks.MockZCLCommunicator{}
		defer mzc.AssertExpectations(t)

		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()

		mp.On("QueryNodeDescription", mock.Anything, ieee).Return(zigbee.NodeDescription{ManufacturerCode: 0x1001}, nil)
		mp.On("QueryNodeEndpoints", mock.Anything, ieee).Return([]zigbee.Endpoint{0, 1, 2}, nil)
		mp.On("QueryNodeEndpointDescription", mock.Anything, ieee, zigbee.Endpoint(1)).Return(zigbee.EndpointDescription{Endpoint: 1, ProfileID: zigbee.ProfileHomeAutomation, DeviceID: 0x0100, InClusterList: []zigbee.ClusterID{zcl.BasicId, zcl.OnOffId}}, nil)
		mp.On("QueryNodeEndpointDescription", mock.Anything, ieee, zigbee.Endpoint(2)).Return(zigbee.EndpointDescription{Endpoint: 2, ProfileID: zigbee.ProfileHomeAutomation, InClusterList: []zigbee.ClusterID{zcl.BasicId}}, nil)

		mzc.On("ReadAttributes", mock.Anything, ieee, true, zcl.BasicId, zigbee.NoManufacturer, DefaultLocalEndpoint, zigbee.Endpoint(1), mock.Anything, []zcl.AttributeID{basic.ManufacturerName, basic.ModelIdentifier, basic.PowerSource}).Return([]global.ReadAttributeResponseRecord{
			{Identifier: basic.ManufacturerName, DataTypeValue: &zcl.AttributeDataTypeValue{DataType: zcl.TypeStringCharacter8, Value: "IKEA of Sweden"}},
			{Identifier: basic.ModelIdentifier, DataTypeValue: &zcl.AttributeDataTypeValue{DataType: zcl.TypeStringCharacter8, Value: "TRADFRI bulb"}},
			{Identifier: basic.PowerSource, DataTypeValue: &zcl.AttributeDataTypeValue{DataType: zcl.TypeEnum8, Value: uint8(0x01)}},
		}, nil)

		dev, err := NewEnumerator(mp, mzc, logwrap.New(discard.Discard())).Enumerate(context.Background(), ieee)
		assert.NoError(t, err)

		assert.Equal(t, zigbee.ManufacturerCode(0x1001), dev.ManufacturerCode)
		assert.Equal(t, "IKEA of Sweden", dev.Manufacturer)
		assert.Equal(t, "TRADFRI bulb", dev.Model)
		assert.True(t, dev.MainsPowered)
		assert.Equal(t, []zigbee.Endpoint{1, 2}, dev.EndpointIDs())
		assert.Equal(t, uint16(0x0100), dev.Endpoints[1].DeviceID)
	})

	t.Run("fails if the node description can not be queried", func(t *testing.T) {
		mp := &zigbee.MockProvider{}
		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()

		mp.On("QueryNodeDescription", mock.Anything, ieee).Return(zigbee.NodeDescription{}, errors.New("failure"))

		_, err := NewEnumerator(mp, nil, logwrap.New(discard.Discard())).Enumerate(context.Background(), ieee)
		assert.Error(t, err)
	})

	t.Run("a device without a basic cluster is still enumerated", func(t *testing.T) {
		mp := &zigbee.MockProvider{}
		defer mp.AssertExpectations(t)

		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()

		mp.On("QueryNodeDescription", mock.Anything, ieee).Return(zigbee.NodeDescription{}, nil)
		mp.On("QueryNodeEndpoints", mock.Anything, ieee).Return([]zigbee.Endpoint{1}, nil)
		mp.On("QueryNodeEndpointDescription", mock.Anything, ieee, zigbee.Endpoint(1)).Return(zigbee.EndpointDescription{Endpoint: 1, InClusterList: []zigbee.ClusterID{zcl.OnOffId}}, nil)

		dev, err := NewEnumerator(mp, &mocks.MockZCLCommunicator{}, logwrap.New(discard.Discard())).Enumerate(context.Background(), ieee)
		assert.NoError(t, err)

		assert.Empty(t, dev.Manufacturer)
		assert.False(t, dev.MainsPowered)
	})
}
