package zha

import (
	"context"
	"errors"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/global"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zigbee"
	"math"
)

// DefaultLocalEndpoint is the controller endpoint ZCL traffic is sent from and
// clusters are bound to.
const DefaultLocalEndpoint = zigbee.Endpoint(0x01)

// Devices from this manufacturer do not acknowledge APS frames reliably.
const xiaomiManufacturerCode = zigbee.ManufacturerCode(0x115f)

var ErrNoNetwork = errors.New("no network available")

// deviceTransport addresses ZCL requests at one device on behalf of its channels.
// The manufacturer code is resolved per request, it may only be known once the
// node description has been read.
type deviceTransport struct {
	ieee          zigbee.IEEEAddress
	code          func() zigbee.ManufacturerCode
	localEndpoint zigbee.Endpoint
	communicator  ZCLCommunicator
	binder        NodeBinder
	sequence      chan uint8
}

var _ channel.Transport = (*deviceTransport)(nil)

func newDeviceTransport(ieee zigbee.IEEEAddress, code func() zigbee.ManufacturerCode, c ZCLCommunicator, b NodeBinder) *deviceTransport {
	return &deviceTransport{
		ieee:          ieee,
		code:          code,
		localEndpoint: DefaultLocalEndpoint,
		communicator:  c,
		binder:        b,
		sequence:      makeTransactionSequence(),
	}
}

func makeTransactionSequence() chan uint8 {
	ch := make(chan uint8, math.MaxUint8)

	for i := uint8(0); i < math.MaxUint8; i++ {
		ch <- i
	}

	return ch
}

func (t *deviceTransport) nextTransactionSequence() uint8 {
	nextSeq := <-t.sequence
	t.sequence <- nextSeq

	return nextSeq
}

func (t *deviceTransport) requireAck() bool {
	return t.code() != xiaomiManufacturerCode
}

func (t *deviceTransport) ReadAttributes(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID, code zigbee.ManufacturerCode, attributes []zcl.AttributeID) ([]global.ReadAttributeResponseRecord, error) {
	if t.communicator == nil {
		return nil, ErrNoNetwork
	}

	return t.communicator.ReadAttributes(ctx, t.ieee, t.requireAck(), cluster, code, t.localEndpoint, endpoint, t.nextTransactionSequence(), attributes)
}

func (t *deviceTransport) ConfigureReporting(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID, code zigbee.ManufacturerCode, attribute zcl.AttributeID, dataType zcl.AttributeDataType, minimum uint16, maximum uint16, change any) error {
	if t.communicator == nil {
		return ErrNoNetwork
	}

	return t.communicator.ConfigureReporting(ctx, t.ieee, t.requireAck(), cluster, code, t.localEndpoint, endpoint, t.nextTransactionSequence(), attribute, dataType, minimum, maximum, change)
}

func (t *deviceTransport) Bind(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID) error {
	if t.binder == nil {
		return ErrNoNetwork
	}

	return t.binder.BindNodeToController(ctx, t.ieee, t.localEndpoint, endpoint, cluster)
}
