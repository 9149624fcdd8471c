package channel

import (
	"context"
	"errors"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/zigbee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
)

func TestZDO(t *testing.T) {
	t.Run("initialize records the node description", func(t *testing.T) {
		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()

		mp := &zigbee.MockProvider{}
		defer mp.AssertExpectations(t)
		mp.On("QueryNodeDescription", mock.Anything, ieee).Return(zigbee.NodeDescription{ManufacturerCode: 0x1234}, nil).Once()

		z := NewZDO(ieee, mp, logwrap.New(discard.Discard()))
		assert.Equal(t, zigbee.NoManufacturer, z.ManufacturerCode())

		assert.NoError(t, z.Initialize(context.Background(), false))
		assert.Equal(t, zigbee.ManufacturerCode(0x1234), z.ManufacturerCode())

		assert.NoError(t, z.Initialize(context.Background(), true))
	})

	t.Run("initialize failure is returned", func(t *testing.T) {
		ieee := zigbee.GenerateLocalAdministeredIEEEAddress()

		mp := &zigbee.MockProvider{}
		defer mp.AssertExpectations(t)
		mp.On("QueryNodeDescription", mock.Anything, ieee).Return(zigbee.NodeDescription{}, errors.New("timeout"))

		z := NewZDO(ieee, mp, logwrap.New(discard.Discard()))

		assert.Error(t, z.Initialize(context.Background(), false))
		_, ok := z.NodeDescription()
		assert.False(t, ok)
	})

	t.Run("configure does nothing", func(t *testing.T) {
		z := NewZDO(zigbee.GenerateLocalAdministeredIEEEAddress(), nil, logwrap.New(discard.Discard()))
		assert.NoError(t, z.Configure(context.Background()))
		assert.Equal(t, "0:zdo", z.ID())
	})
}
