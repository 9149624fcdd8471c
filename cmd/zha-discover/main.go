package main

import (
	"context"
	"flag"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"github.com/shimmeringbee/zha"
	"github.com/shimmeringbee/zha/entity"
	"github.com/shimmeringbee/zha/mqttrelay"
	"gopkg.in/yaml.v3"
	"log"
	"os"
)

func main() {
	devicePath := flag.String("device", "", "YAML device fixture to discover")
	overridesPath := flag.String("overrides", "", "YAML device overrides")
	broker := flag.String("mqtt", "", "MQTT broker to publish discovered entities to")
	prefix := flag.String("prefix", mqttrelay.DefaultPrefix, "MQTT topic prefix")
	flag.Parse()

	stdLogger := log.New(os.Stderr, "", log.LstdFlags)
	logger := logwrap.New(golog.Wrap(stdLogger))
	ctx := context.Background()

	if *devicePath == "" {
		logger.LogError(ctx, "A device fixture is required.")
		os.Exit(2)
	}

	overrides := zha.NewDeviceOverrides()

	if *overridesPath != "" {
		f, err := os.Open(*overridesPath)
		if err != nil {
			logger.LogError(ctx, "Failed to open device overrides.", logwrap.Err(err))
			os.Exit(1)
		}

		entries, err := zha.LoadDeviceOverrides(f)
		_ = f.Close()

		if err != nil {
			logger.LogError(ctx, "Failed to load device overrides.", logwrap.Err(err))
			os.Exit(1)
		}

		overrides.Update(entries)
	}

	f, err := os.Open(*devicePath)
	if err != nil {
		logger.LogError(ctx, "Failed to open device fixture.", logwrap.Err(err))
		os.Exit(1)
	}

	dev, err := loadDevice(f)
	_ = f.Close()

	if err != nil {
		logger.LogError(ctx, "Failed to load device fixture.", logwrap.Err(err))
		os.Exit(1)
	}

	bus := zha.NewBus()

	if *broker != "" {
		client, err := mqttrelay.Connect(*broker, "zha-discover")
		if err != nil {
			logger.LogError(ctx, "Failed to connect to MQTT broker.", logwrap.Err(err))
			os.Exit(1)
		}
		defer client.Disconnect(250)

		mqttrelay.New(client, *prefix, logger).Attach(bus)
	}

	d := zha.NewDiscovery(entity.DefaultRegistry(), overrides, bus, nil)
	d.WithLogWrapLogger(logger)

	c, err := d.Discover(ctx, dev)
	if err != nil {
		logger.LogError(ctx, "Discovery failed.", logwrap.Err(err))
		os.Exit(1)
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()

	if err := enc.Encode(summarise(c)); err != nil {
		logger.LogError(ctx, "Failed to write assignments.", logwrap.Err(err))
	}
}
