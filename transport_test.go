package zha

import (
	"context"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/global"
	"github.com/shimmeringbee/zha/mocks"
	"github.com/shimmeringbee/zigbee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
)

func fixedCode(code zigbee.ManufacturerCode) func() zigbee.ManufacturerCode {
	return func() zigbee.ManufacturerCode { return code }
}

func TestDeviceTransport(t *testing.T) {
	t.Run("requests are sent from the local endpoint with acknowledgement", func(t *testing.T) {
		mzc := &mocks.MockZCLCommunicator{}
		defer mzc.AssertExpectations(t)

		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()
		tr := newDeviceTransport(ieee, fixedCode(zigbee.NoManufacturer), mzc, nil)

		mzc.On("ReadAttributes", mock.Anything, ieee, true, zcl.OnOffId, zigbee.NoManufacturer, DefaultLocalEndpoint, zigbee.Endpoint(2), mock.Anything, []zcl.AttributeID{0}).Return([]global.ReadAttributeResponseRecord{}, nil)

		_, err := tr.ReadAttributes(context.Background(), 2, zcl.OnOffId, zigbee.NoManufacturer, []zcl.AttributeID{0})
		assert.NoError(t, err)
	})

	t.Run("acknowledgement is disabled for Xiaomi devices", func(t *testing.T) {
		mzc := &mocks.MockZCLCommunicator{}
		defer mzc.AssertExpectations(t)

		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()
		tr := newDeviceTransport(ieee, fixedCode(0x115f), mzc, nil)

		mzc.On("ConfigureReporting", mock.Anything, ieee, false, zcl.OnOffId, zigbee.NoManufacturer, DefaultLocalEndpoint, zigbee.Endpoint(1), mock.Anything, zcl.AttributeID(0), zcl.TypeBoolean, uint16(0), uint16(60), nil).Return(nil)

		assert.NoError(t, tr.ConfigureReporting(context.Background(), 1, zcl.OnOffId, zigbee.NoManufacturer, 0, zcl.TypeBoolean, 0, 60, nil))
	})

	t.Run("acknowledgement follows a manufacturer code learnt after construction", func(t *testing.T) {
		mzc := &mocks.MockZCLCommunicator{}
		defer mzc.AssertExpectations(t)

		code := zigbee.NoManufacturer
		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()
		tr := newDeviceTransport(ieee, func() zigbee.ManufacturerCode { return code }, mzc, nil)

		mzc.On("ReadAttributes", mock.Anything, ieee, true, zcl.BasicId, zigbee.NoManufacturer, DefaultLocalEndpoint, zigbee.Endpoint(1), mock.Anything, []zcl.AttributeID{0}).Return([]global.ReadAttributeResponseRecord{}, nil).Once()
		mzc.On("ReadAttributes", mock.Anything, ieee, false, zcl.BasicId, zigbee.NoManufacturer, DefaultLocalEndpoint, zigbee.Endpoint(1), mock.Anything, []zcl.AttributeID{0}).Return([]global.ReadAttributeResponseRecord{}, nil).Once()

		_, err := tr.ReadAttributes(context.Background(), 1, zcl.BasicId, zigbee.NoManufacturer, []zcl.AttributeID{0})
		assert.NoError(t, err)

		code = 0x115f

		_, err = tr.ReadAttributes(context.Background(), 1, zcl.BasicId, zigbee.NoManufacturer, []zcl.AttributeID{0})
		assert.NoError(t, err)
	})

	t.Run("binds the remote endpoint to the local endpoint", func(t *testing.T) {
		mp := &zigbee.MockProvider{}
		defer mp.AssertExpectations(t)

		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()
		tr := newDeviceTransport(ieee, fixedCode(zigbee.NoManufacturer), nil, mp)

		mp.On("BindNodeToController", mock.Anything, ieee, DefaultLocalEndpoint, zigbee.Endpoint(3), zcl.OnOffId).Return(nil)

		assert.NoError(t, tr.Bind(context.Background(), 3, zcl.OnOffId))
	})

	t.Run("fails without a network", func(t *testing.T) {
		tr := newDeviceTransport(zigbee.GenerateLocalAdministeredIEEEAddress(), fixedCode(zigbee.NoManufacturer), nil, nil)

		_, err := tr.ReadAttributes(context.Background(), 1, zcl.OnOffId, zigbee.NoManufacturer, nil)
		assert.ErrorIs(t, err, ErrNoNetwork)
		assert.ErrorIs(t, tr.Bind(context.Background(), 1, zcl.OnOffId), ErrNoNetwork)
	})

	t.Run("transaction sequences rotate", func(t *testing.T) {
		tr := newDeviceTransport(zigbee.GenerateLocalAdministeredIEEEAddress(), fixedCode(zigbee.NoManufacturer), nil, nil)

		first := tr.nextTransactionSequence()
		second := tr.nextTransactionSequence()

		assert.NotEqual(t, first, second)
	})
}
