package rules

import (
	"errors"
	"fmt"
	"github.com/antonmedv/expr/vm"
	"github.com/shimmeringbee/zha/channel"
	"github.com/shimmeringbee/zigbee"
	"sync"
)

var ErrUnknownComponent = errors.New("unknown component")
var ErrInvalidRule = errors.New("invalid match rule")

// Device is the device reference handed to entity constructors.
type Device struct {
	UniqueID         string
	IEEEAddress      zigbee.IEEEAddress
	Manufacturer     string
	Model            string
	ManufacturerCode zigbee.ManufacturerCode
	MainsPowered     bool
}

type Entity interface {
	UniqueID() string
	Component() Component
	Channels() []channel.Channel
}

type Factory func(uniqueID string, device Device, channels []channel.Channel) Entity

// MatchRule selects an entity implementation by the names of the channels
// available to it. Every ChannelNames entry must be present, AuxChannels are
// claimed when present and make the rule more specific.
type MatchRule struct {
	Component    Component
	ChannelNames []string
	AuxChannels  []string
	Filter       Filter
}

// Weight is the static specificity of the rule, device filters outweigh any
// number of channels.
func (r MatchRule) Weight() int {
	return r.Filter.weight() + 10*len(r.ChannelNames)
}

// claim picks the channels the rule would claim from those available, the bool is
// false if a required channel is missing.
func (r MatchRule) claim(available []channel.Channel) ([]channel.Channel, int, bool) {
	var claimed []channel.Channel

	for _, name := range r.ChannelNames {
		ch, ok := findByName(available, name)
		if !ok {
			return nil, 0, false
		}

		claimed = append(claimed, ch)
	}

	aux := 0

	for _, name := range r.AuxChannels {
		if ch, ok := findByName(available, name); ok {
			claimed = append(claimed, ch)
			aux++
		}
	}

	return claimed, aux, true
}

func findByName(channels []channel.Channel, name string) (channel.Channel, bool) {
	for _, ch := range channels {
		if ch.Name() == name {
			return ch, true
		}
	}

	return nil, false
}

type registeredRule struct {
	rule    MatchRule
	program *vm.Program
	factory Factory
}

// EntityRegistry holds the match rules registered by entity implementations.
type EntityRegistry struct {
	m     *sync.RWMutex
	rules map[Component][]registeredRule
}

func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{
		m:     &sync.RWMutex{},
		rules: map[Component][]registeredRule{},
	}
}

// Register adds a rule, rules of the same specificity are resolved in
// registration order.
func (e *EntityRegistry) Register(r MatchRule, f Factory) error {
	if !r.Component.Supported() {
		return fmt.Errorf("%w: %s", ErrUnknownComponent, r.Component)
	}

	if len(r.ChannelNames) == 0 {
		return fmt.Errorf("%w: %s rule requires at least one channel name", ErrInvalidRule, r.Component)
	}

	if f == nil {
		return fmt.Errorf("%w: %s rule has no factory", ErrInvalidRule, r.Component)
	}

	p, err := r.Filter.compile()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidRule, r.Component, err)
	}

	e.m.Lock()
	defer e.m.Unlock()

	e.rules[r.Component] = append(e.rules[r.Component], registeredRule{rule: r, program: p, factory: f})

	return nil
}

// Match is the outcome of a successful lookup.
type Match struct {
	Rule     MatchRule
	Factory  Factory
	Channels []channel.Channel
}

// GetEntity returns the most specific rule for the component whose required
// channels are all among those given and whose filter accepts the device.
func (e *EntityRegistry) GetEntity(c Component, d Device, channels []channel.Channel) (Match, bool) {
	e.m.RLock()
	defer e.m.RUnlock()

	md := MatchData{
		Manufacturer:     d.Manufacturer,
		Model:            d.Model,
		ManufacturerCode: d.ManufacturerCode,
		MainsPowered:     d.MainsPowered,
	}

	for _, ch := range channels {
		md.Channels = append(md.Channels, ch.Name())
	}

	var best Match
	bestScore := -1

	for _, rr := range e.rules[c] {
		if !rr.rule.Filter.matches(rr.program, md) {
			continue
		}

		claimed, aux, ok := rr.rule.claim(channels)
		if !ok {
			continue
		}

		if score := rr.rule.Weight() + aux; score > bestScore {
			bestScore = score
			best = Match{Rule: rr.rule, Factory: rr.factory, Channels: claimed}
		}
	}

	return best, bestScore >= 0
}
