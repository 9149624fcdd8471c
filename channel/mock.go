package channel

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zcl/commands/global"
	"github.com/shimmeringbee/zigbee"
	"github.com/stretchr/testify/mock"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) ReadAttributes(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID, code zigbee.ManufacturerCode, attributes []zcl.AttributeID) ([]global.ReadAttributeResponseRecord, error) {
	args := m.Called(ctx, endpoint, cluster, code, attributes)
	return args.Get(0).([]global.ReadAttributeResponseRecord), args.Error(1)
}

func (m *MockTransport) ConfigureReporting(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID, code zigbee.ManufacturerCode, attribute zcl.AttributeID, dataType zcl.AttributeDataType, minimum uint16, maximum uint16, change any) error {
	return m.Called(ctx, endpoint, cluster, code, attribute, dataType, minimum, maximum, change).Error(0)
}

func (m *MockTransport) Bind(ctx context.Context, endpoint zigbee.Endpoint, cluster zigbee.ClusterID) error {
	return m.Called(ctx, endpoint, cluster).Error(0)
}

var _ Transport = (*MockTransport)(nil)

// StubOwner is an Owner backed by fixed values, recording events and attribute
// updates it receives.
type StubOwner struct {
	IEEE     zigbee.IEEEAddress
	Endpoint zigbee.Endpoint
	Code     zigbee.ManufacturerCode
	Network  Transport
	Storage  persistence.Section
	Log      logwrap.Logger
	Events   []map[string]any
	Updates  []zcl.AttributeID
}

func (s *StubOwner) UniqueID() string {
	return fmt.Sprintf("%s-%d", s.IEEE, s.Endpoint)
}

func (s *StubOwner) EndpointID() zigbee.Endpoint {
	return s.Endpoint
}

func (s *StubOwner) IEEEAddress() zigbee.IEEEAddress {
	return s.IEEE
}

func (s *StubOwner) ManufacturerCode() zigbee.ManufacturerCode {
	return s.Code
}

func (s *StubOwner) Transport() Transport {
	return s.Network
}

func (s *StubOwner) Logger() logwrap.Logger {
	return s.Log
}

func (s *StubOwner) Section(channelID string) persistence.Section {
	return s.Storage.Section(channelID)
}

func (s *StubOwner) SendEvent(_ context.Context, event map[string]any) {
	s.Events = append(s.Events, event)
}

func (s *StubOwner) AttributeUpdated(_ context.Context, _ Channel, id zcl.AttributeID, _ zcl.AttributeDataTypeValue) {
	s.Updates = append(s.Updates, id)
}

var _ Owner = (*StubOwner)(nil)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ID() string {
	return m.Called().String(0)
}

func (m *MockChannel) Name() string {
	return m.Called().String(0)
}

func (m *MockChannel) Initialize(ctx context.Context, fromCache bool) error {
	return m.Called(ctx, fromCache).Error(0)
}

func (m *MockChannel) Configure(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockChannel) Cluster() Cluster {
	return m.Called().Get(0).(Cluster)
}

func (m *MockChannel) HandleMessage(ctx context.Context, msg zcl.Message) {
	m.Called(ctx, msg)
}

func (m *MockChannel) Attribute(id zcl.AttributeID) (zcl.AttributeDataTypeValue, bool) {
	args := m.Called(id)
	return args.Get(0).(zcl.AttributeDataTypeValue), args.Bool(1)
}

var _ Channel = (*MockChannel)(nil)
