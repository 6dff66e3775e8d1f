package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyChain is returned for a chain without members
	ErrEmptyChain = errors.New("nuclide chain is empty")
	// ErrUnknownPair is returned when a pair label matches no selectable pair
	ErrUnknownPair = errors.New("unknown nuclide pair")
)

// NuclideChain is a linear decay chain ordered parent first
type NuclideChain []string

// Validate checks that the chain has at least one member and no repeats
func (c NuclideChain) Validate() error {
	if len(c) == 0 {
		return ErrEmptyChain
	}
	seen := make(map[string]bool, len(c))
	for _, n := range c {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("nuclide chain contains an empty identifier")
		}
		if seen[n] {
			return fmt.Errorf("nuclide %s appears twice in chain", n)
		}
		seen[n] = true
	}
	return nil
}

// Parent returns the first member of the chain
func (c NuclideChain) Parent() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Contains reports whether name is a member of the chain
func (c NuclideChain) Contains(name string) bool {
	for _, n := range c {
		if n == name {
			return true
		}
	}
	return false
}

func (c NuclideChain) String() string {
	return strings.Join(c, " → ")
}

// NuclidePair is a selectable parent/progeny combination
type NuclidePair struct {
	Label   string `json:"label"`
	Parent  string `json:"parent"`
	Progeny string `json:"progeny"`
}

// Chain returns the pair as a two-member chain
func (p NuclidePair) Chain() NuclideChain {
	return NuclideChain{p.Parent, p.Progeny}
}

// DefaultPairs returns the generator and ingrowth pairs offered by default
func DefaultPairs() []NuclidePair {
	return []NuclidePair{
		{Label: "Th-227 / Ra-223", Parent: "Th-227", Progeny: "Ra-223"},
		{Label: "Mo-99 / Tc-99m", Parent: "Mo-99", Progeny: "Tc-99m"},
		{Label: "Ge-68 / Ga-68", Parent: "Ge-68", Progeny: "Ga-68"},
		{Label: "Sr-90 / Y-90", Parent: "Sr-90", Progeny: "Y-90"},
		{Label: "W-188 / Re-188", Parent: "W-188", Progeny: "Re-188"},
		{Label: "Ac-225 / Fr-221", Parent: "Ac-225", Progeny: "Fr-221"},
	}
}

// FindPair looks a pair up by label. Whitespace and case are ignored,
// so "th-227/ra-223" matches "Th-227 / Ra-223".
func FindPair(pairs []NuclidePair, label string) (NuclidePair, error) {
	key := normalizePairLabel(label)
	for _, p := range pairs {
		if normalizePairLabel(p.Label) == key {
			return p, nil
		}
	}
	return NuclidePair{}, fmt.Errorf("%w: %q", ErrUnknownPair, label)
}

func normalizePairLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), ""))
}
