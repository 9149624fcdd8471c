package zha

import (
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zha/rules"
	"github.com/shimmeringbee/zigbee"
	"sort"
)

// Endpoint is an endpoint as advertised by a device. ClusterKinds overrides the
// kind of clusters on quirked devices.
type Endpoint struct {
	zigbee.EndpointDescription
	ClusterKinds map[zigbee.ClusterID]string
}

func (e Endpoint) kind(id zigbee.ClusterID) string {
	if k, ok := e.ClusterKinds[id]; ok {
		return k
	}

	return channel.KindOf(id)
}

func (e Endpoint) cluster(id zigbee.ClusterID, d channel.Direction) channel.Cluster {
	return channel.Cluster{Endpoint: e.Endpoint, ID: id, Direction: d, Kind: e.kind(id)}
}

func (e Endpoint) hasOutCluster(id zigbee.ClusterID) bool {
	return isClusterIdInSlice(e.OutClusterList, id)
}

// Device is a physical device as enumerated from the network.
type Device struct {
	IEEEAddress      zigbee.IEEEAddress
	Manufacturer     string
	Model            string
	ManufacturerCode zigbee.ManufacturerCode
	MainsPowered     bool
	Endpoints        map[zigbee.Endpoint]Endpoint
}

func (d Device) UniqueID() string {
	return d.IEEEAddress.String()
}

// EndpointIDs returns the device's endpoint ids in ascending order, excluding the
// ZDO endpoint.
func (d Device) EndpointIDs() []zigbee.Endpoint {
	var eps []zigbee.Endpoint

	for id := range d.Endpoints {
		if id != 0 {
			eps = append(eps, id)
		}
	}

	sort.Slice(eps, func(i, j int) bool {
		return eps[i] < eps[j]
	})

	return eps
}

func (d Device) reference() rules.Device {
	return rules.Device{
		UniqueID:         d.UniqueID(),
		IEEEAddress:      d.IEEEAddress,
		Manufacturer:     d.Manufacturer,
		Model:            d.Model,
		ManufacturerCode: d.ManufacturerCode,
		MainsPowered:     d.MainsPowered,
	}
}
