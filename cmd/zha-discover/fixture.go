package main

import (
	"fmt"
	"github.com/shimmeringbee/zha"
	"github.com/shimmeringbee/zigbee"
	"gopkg.in/yaml.v3"
	"io"
)

type endpointFixture struct {
	Endpoint   uint8             `yaml:"endpoint"`
	Profile    uint16            `yaml:"profile"`
	DeviceType uint16            `yaml:"device_type"`
	In         []uint16          `yaml:"in"`
	Out        []uint16          `yaml:"out"`
	Kinds      map[uint16]string `yaml:"kinds"`
}

type deviceFixture struct {
	IEEE             uint64            `yaml:"ieee"`
	Manufacturer     string            `yaml:"manufacturer"`
	Model            string            `yaml:"model"`
	ManufacturerCode uint16            `yaml:"manufacturer_code"`
	MainsPowered     bool              `yaml:"mains_powered"`
	Endpoints        []endpointFixture `yaml:"endpoints"`
}

func loadDevice(r io.Reader) (zha.Device, error) {
	var f deviceFixture

	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return zha.Device{}, fmt.Errorf("decode device fixture: %w", err)
	}

	d := zha.Device{
		IEEEAddress:      zigbee.IEEEAddress(f.IEEE),
		Manufacturer:     f.Manufacturer,
		Model:            f.Model,
		ManufacturerCode: zigbee.ManufacturerCode(f.ManufacturerCode),
		MainsPowered:     f.MainsPowered,
		Endpoints:        map[zigbee.Endpoint]zha.Endpoint{},
	}

	for _, ef := range f.Endpoints {
		e := zha.Endpoint{
			EndpointDescription: zigbee.EndpointDescription{
				Endpoint:       zigbee.Endpoint(ef.Endpoint),
				ProfileID:      zigbee.ProfileID(ef.Profile),
				DeviceID:       ef.DeviceType,
				InClusterList:  clusterIDs(ef.In),
				OutClusterList: clusterIDs(ef.Out),
			},
		}

		if len(ef.Kinds) > 0 {
			e.ClusterKinds = map[zigbee.ClusterID]string{}
			for id, kind := range ef.Kinds {
				e.ClusterKinds[zigbee.ClusterID(id)] = kind
			}
		}

		d.Endpoints[e.Endpoint] = e
	}

	return d, nil
}

func clusterIDs(ids []uint16) []zigbee.ClusterID {
	var cs []zigbee.ClusterID

	for _, id := range ids {
		cs = append(cs, zigbee.ClusterID(id))
	}

	return cs
}

type assignmentOutput struct {
	UniqueID  string   `yaml:"unique_id"`
	Component string   `yaml:"component"`
	Channels  []string `yaml:"channels"`
}

type endpointOutput struct {
	Endpoint  uint8              `yaml:"endpoint"`
	Entities  []assignmentOutput `yaml:"entities,omitempty"`
	Relays    []string           `yaml:"relays,omitempty"`
	Unclaimed []string           `yaml:"unclaimed,omitempty"`
}

func summarise(c *zha.Channels) []endpointOutput {
	var out []endpointOutput

	for _, e := range c.Endpoints() {
		eo := endpointOutput{Endpoint: uint8(e.EndpointID())}

		for _, a := range c.Assignments() {
			if len(a.Channels) == 0 || a.Channels[0].Cluster().Endpoint != e.EndpointID() {
				continue
			}

			ao := assignmentOutput{UniqueID: a.UniqueID, Component: string(a.Component)}
			for _, ch := range a.Channels {
				ao.Channels = append(ao.Channels, ch.ID())
			}

			eo.Entities = append(eo.Entities, ao)
		}

		for id := range e.RelayChannels() {
			eo.Relays = append(eo.Relays, id)
		}

		for _, ch := range e.UnclaimedChannels() {
			eo.Unclaimed = append(eo.Unclaimed, ch.ID())
		}

		out = append(out, eo)
	}

	return out
}
