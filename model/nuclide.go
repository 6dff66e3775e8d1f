package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Nuclide is a catalog entry for a radioactive (or stable) atomic species
type Nuclide struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`      // e.g. "Th-227"
	HalfLife  float64   `json:"half_life"` // seconds, +Inf for stable nuclides
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Stable reports whether the nuclide does not decay
func (n *Nuclide) Stable() bool {
	return math.IsInf(n.HalfLife, 1)
}

// DecayConstant returns ln2 / T½ in 1/s, 0 for stable nuclides
func (n *Nuclide) DecayConstant() float64 {
	if n.Stable() || n.HalfLife <= 0 {
		return 0
	}
	return math.Ln2 / n.HalfLife
}

// HalfLifeIn returns the half-life expressed in unit
func (n *Nuclide) HalfLifeIn(unit TimeUnit) (float64, error) {
	return unit.FromSeconds(n.HalfLife)
}

// DecayMode is the decay process of a branch
type DecayMode string

const (
	DecayModeAlpha     DecayMode = "alpha"
	DecayModeBetaMinus DecayMode = "beta-"
	DecayModeBetaPlus  DecayMode = "beta+"
	DecayModeEC        DecayMode = "EC"
	DecayModeIT        DecayMode = "IT"
)

// DecayBranch links a parent nuclide to one of its progeny
type DecayBranch struct {
	ID        uuid.UUID `json:"id"`
	Parent    string    `json:"parent"`
	Progeny   string    `json:"progeny"`
	Mode      DecayMode `json:"mode"`
	Fraction  float64   `json:"fraction"` // branching fraction in (0, 1]
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
