package decay

import (
	"math"

	"github.com/siherrmann/decayer/model"
)

const (
	second = 1.0
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
	year   = model.SecondsPerYear
)

var stable = math.Inf(1)

type nuclideData struct {
	name     string
	halfLife float64
}

type branchData struct {
	parent   string
	progeny  string
	mode     model.DecayMode
	fraction float64
}

// Half-lives and dominant branches from ICRP Publication 107.
// Branches below 1e-4 are left out.
var defaultNuclides = []nuclideData{
	// Th-227 series
	{"Th-227", 18.68 * day},
	{"Ra-223", 11.43 * day},
	{"Rn-219", 3.96 * second},
	{"Po-215", 1.781e-3 * second},
	{"Pb-211", 36.1 * minute},
	{"Bi-211", 2.14 * minute},
	{"Tl-207", 4.77 * minute},
	{"Po-211", 0.516 * second},
	{"Pb-207", stable},

	// Mo-99 generator
	{"Mo-99", 65.94 * hour},
	{"Tc-99m", 6.015 * hour},
	{"Tc-99", 2.111e5 * year},
	{"Ru-99", stable},

	// Ge-68 generator
	{"Ge-68", 270.95 * day},
	{"Ga-68", 67.71 * minute},
	{"Zn-68", stable},

	// Sr-90 generator
	{"Sr-90", 28.79 * year},
	{"Y-90", 64.0 * hour},
	{"Zr-90", stable},

	// W-188 generator
	{"W-188", 69.78 * day},
	{"Re-188", 17.005 * hour},
	{"Os-188", stable},

	// Ac-225 series
	{"Ac-225", 10.0 * day},
	{"Fr-221", 4.9 * minute},
	{"At-217", 32.3e-3 * second},
	{"Bi-213", 45.59 * minute},
	{"Po-213", 4.2e-6 * second},
	{"Tl-209", 2.161 * minute},
	{"Pb-209", 3.253 * hour},
	{"Bi-209", stable},
}

var defaultBranches = []branchData{
	{"Th-227", "Ra-223", model.DecayModeAlpha, 1},
	{"Ra-223", "Rn-219", model.DecayModeAlpha, 1},
	{"Rn-219", "Po-215", model.DecayModeAlpha, 1},
	{"Po-215", "Pb-211", model.DecayModeAlpha, 1},
	{"Pb-211", "Bi-211", model.DecayModeBetaMinus, 1},
	{"Bi-211", "Tl-207", model.DecayModeAlpha, 0.99724},
	{"Bi-211", "Po-211", model.DecayModeBetaMinus, 0.00276},
	{"Tl-207", "Pb-207", model.DecayModeBetaMinus, 1},
	{"Po-211", "Pb-207", model.DecayModeAlpha, 1},

	{"Mo-99", "Tc-99m", model.DecayModeBetaMinus, 0.8773},
	{"Mo-99", "Tc-99", model.DecayModeBetaMinus, 0.1227},
	{"Tc-99m", "Tc-99", model.DecayModeIT, 0.99996},
	{"Tc-99", "Ru-99", model.DecayModeBetaMinus, 1},

	{"Ge-68", "Ga-68", model.DecayModeEC, 1},
	{"Ga-68", "Zn-68", model.DecayModeBetaPlus, 1},

	{"Sr-90", "Y-90", model.DecayModeBetaMinus, 1},
	{"Y-90", "Zr-90", model.DecayModeBetaMinus, 1},

	{"W-188", "Re-188", model.DecayModeBetaMinus, 1},
	{"Re-188", "Os-188", model.DecayModeBetaMinus, 1},

	{"Ac-225", "Fr-221", model.DecayModeAlpha, 1},
	{"Fr-221", "At-217", model.DecayModeAlpha, 1},
	{"At-217", "Bi-213", model.DecayModeAlpha, 0.99988},
	{"Bi-213", "Po-213", model.DecayModeBetaMinus, 0.9791},
	{"Bi-213", "Tl-209", model.DecayModeAlpha, 0.0209},
	{"Po-213", "Pb-209", model.DecayModeAlpha, 1},
	{"Tl-209", "Pb-209", model.DecayModeBetaMinus, 1},
	{"Pb-209", "Bi-209", model.DecayModeBetaMinus, 1},
}

// DefaultCatalog returns a new catalog holding the nuclides of the default pairs
// and their progeny down to a stable nuclide.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, d := range defaultNuclides {
		n := &model.Nuclide{
			Name:     d.name,
			HalfLife: d.halfLife,
			Metadata: model.Metadata{"source": "ICRP-107"},
		}
		if err := c.AddNuclide(n); err != nil {
			panic(err)
		}
	}
	for _, d := range defaultBranches {
		b := &model.DecayBranch{
			Parent:   d.parent,
			Progeny:  d.progeny,
			Mode:     d.mode,
			Fraction: d.fraction,
		}
		if err := c.AddBranch(b); err != nil {
			panic(err)
		}
	}
	return c
}
