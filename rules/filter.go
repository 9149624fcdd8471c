package rules

import (
	"fmt"
	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/shimmeringbee/zigbee"
)

// Filter restricts a rule to particular devices. Empty fields match everything.
// Expression is an expr language boolean evaluated against MatchData.
type Filter struct {
	Manufacturers []string
	Models        []string
	Expression    string
}

type MatchData struct {
	Manufacturer     string
	Model            string
	ManufacturerCode zigbee.ManufacturerCode
	MainsPowered     bool
	Channels         []string
}

func (f Filter) compile() (*vm.Program, error) {
	if f.Expression == "" {
		return nil, nil
	}

	p, err := expr.Compile(f.Expression, expr.Env(MatchData{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("filter compilation: %w", err)
	}

	return p, nil
}

func (f Filter) matches(p *vm.Program, m MatchData) bool {
	if len(f.Manufacturers) > 0 && !containsString(f.Manufacturers, m.Manufacturer) {
		return false
	}

	if len(f.Models) > 0 && !containsString(f.Models, m.Model) {
		return false
	}

	if p != nil {
		out, err := expr.Run(p, m)
		if err != nil {
			return false
		}

		if b, ok := out.(bool); !ok || !b {
			return false
		}
	}

	return true
}

// weight is the specificity the filter adds to a rule.
func (f Filter) weight() int {
	w := 0

	if len(f.Manufacturers) > 0 {
		w += 100
	}

	if len(f.Models) > 0 {
		w += 100
	}

	if f.Expression != "" {
		w += 100
	}

	return w
}

func containsString(haystack []string, needle string) bool {
	for _, straw := range haystack {
		if straw == needle {
			return true
		}
	}

	return false
}
