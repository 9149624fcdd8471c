package channel

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/global"
	"github.com/shimmeringbee/zigbee"
)

// Lifecycle is the part of a channel driven by the device wide initialize and
// configure fan out. The ZDO channel implements only this.
type Lifecycle interface {
	ID() string
	Name() string
	Initialize(ctx context.Context, fromCache bool) error
	Configure(ctx context.Context) error
}

// Channel wraps a single cluster on a single endpoint.
type Channel interface {
	Lifecycle
	Cluster() Cluster
	HandleMessage(ctx context.Context, m zcl.Message)
	Attribute(id zcl.AttributeID) (zcl.AttributeDataTypeValue, bool)
}

// Transport issues ZCL requests to the device owning a channel. Addressing,
// acknowledgement and transaction sequencing are the transport's concern.
type Transport interface {
	ReadAttributes(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID, code zigbee.ManufacturerCode, attributes []zcl.AttributeID) ([]global.ReadAttributeResponseRecord, error)
	ConfigureReporting(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID, code zigbee.ManufacturerCode, attribute zcl.AttributeID, dataType zcl.AttributeDataType, minimum uint16, maximum uint16, change any) error
	Bind(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID) error
}

// Owner is the endpoint aggregate a channel belongs to. Channels only hold this
// handle, the aggregate owns the channels.
type Owner interface {
	UniqueID() string
	EndpointID() zigbee.Endpoint
	IEEEAddress() zigbee.IEEEAddress
	ManufacturerCode() zigbee.ManufacturerCode
	Transport() Transport
	Logger() logwrap.Logger
	Section(channelID string) persistence.Section
	SendEvent(ctx context.Context, event map[string]any)
	AttributeUpdated(ctx context.Context, ch Channel, id zcl.AttributeID, value zcl.AttributeDataTypeValue)
}

type Direction uint8

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == Out {
		return "out"
	}

	return "in"
}

// Cluster describes one cluster as advertised by an endpoint. Kind is the name the
// cluster library exposes the cluster under, quirked devices may report a kind
// that does not match the numeric id.
type Cluster struct {
	Endpoint  zigbee.Endpoint
	ID        zigbee.ClusterID
	Direction Direction
	Kind      string
}

// ID formats the persisted channel identifier.
func ID(e zigbee.Endpoint, c zigbee.ClusterID) string {
	return fmt.Sprintf("%d:0x%04x", e, c)
}

func (c Cluster) ChannelID() string {
	return ID(c.Endpoint, c.ID)
}

func (c Cluster) ManufacturerSpecific() bool {
	return c.ID >= 0xfc00
}
