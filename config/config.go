// Package config holds the search parameters for cation-π screening, their
// named presets and the TOML file format used to override them.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tikz/cationpi/pdb"
)

// CutoffMargin widens the raw pairwise distance cutoff over the mean threshold,
// so that samples slightly above the threshold still count towards the standard deviation.
const CutoffMargin = 1.4

// BaitSpec identifies a cation atom by residue and atom name, e.g. ARG CZ.
type BaitSpec struct {
	Residue string
	Atom    string
}

func (b BaitSpec) String() string {
	return b.Residue + ":" + b.Atom
}

// PreySpecs maps a residue name to the names of its π system atoms.
type PreySpecs map[string][]string

// Residues returns the residue names in sorted order.
func (p PreySpecs) Residues() []string {
	var names []string
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config bundles every parameter of a search.
type Config struct {
	Residues        []string
	ExcludeBackbone bool
	ExcludeAtoms    []string
	Chains          []string
	Bait            []BaitSpec
	Prey            PreySpecs
	MinInteractions int
	MeanThreshold   float64
	StdThreshold    float64
	Workers         int
}

// Default returns the library preset: backbone excluded, at least 5 observations per residue pair.
func Default() Config {
	return Config{
		Residues:        []string{"LYS", "ARG", "PHE", "TRP", "TYR"},
		ExcludeBackbone: true,
		ExcludeAtoms:    []string{"CB", "NH1", "NH2", "NE1", "NE2", "OH"},
		Bait: []BaitSpec{
			{"ARG", "CZ"},
			{"LYS", "NZ"},
		},
		Prey: PreySpecs{
			"TRP": {"CD2", "CE2", "CE3", "CZ2", "CZ3", "CH2"},
			"PHE": {"CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
			"TYR": {"CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
		},
		MinInteractions: 5,
		MeanThreshold:   5,
		StdThreshold:    0.75,
	}
}

// CLI returns the command line preset: backbone kept, at least 6 observations per residue pair.
func CLI() Config {
	c := Default()
	c.ExcludeBackbone = false
	c.MinInteractions = 6
	return c
}

// Cutoff returns the raw pairwise distance cutoff.
func (c Config) Cutoff() float64 {
	return c.MeanThreshold * CutoffMargin
}

// Filter returns the parser filter for the search. Atom inclusion is never restricted.
func (c Config) Filter() pdb.Filter {
	return pdb.Filter{
		IncludeResidues: c.Residues,
		ExcludeBackbone: c.ExcludeBackbone,
		ExcludeAtoms:    c.ExcludeAtoms,
	}
}

// Validate checks the parameters are usable.
func (c Config) Validate() error {
	if c.MinInteractions < 1 {
		return fmt.Errorf("min_interactions must be at least 1, got %d", c.MinInteractions)
	}
	if !positive(c.MeanThreshold) {
		return fmt.Errorf("mean_threshold must be a positive number, got %v", c.MeanThreshold)
	}
	if !positive(c.StdThreshold) {
		return fmt.Errorf("std_threshold must be a positive number, got %v", c.StdThreshold)
	}

	if len(c.Bait) == 0 {
		return errors.New("no bait atoms")
	}
	for _, b := range c.Bait {
		if b.Residue == "" || b.Atom == "" {
			return fmt.Errorf("incomplete bait atom %q", b.String())
		}
	}

	if len(c.Prey) == 0 {
		return errors.New("no prey atoms")
	}
	for res, atoms := range c.Prey {
		if res == "" || len(atoms) == 0 {
			return fmt.Errorf("incomplete prey atoms for residue %q", res)
		}
		for _, a := range atoms {
			if a == "" {
				return fmt.Errorf("empty prey atom name for residue %s", res)
			}
		}
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ParseBaitList parses a comma separated list of RES:ATOM items, e.g. "ARG:CZ,LYS:NZ".
func ParseBaitList(s string) ([]BaitSpec, error) {
	var baits []BaitSpec
	for _, item := range splitList(s, ",") {
		parts := strings.Split(item, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("bait %q: expected RES:ATOM", item)
		}
		baits = append(baits, BaitSpec{
			Residue: strings.TrimSpace(parts[0]),
			Atom:    strings.TrimSpace(parts[1]),
		})
	}
	return baits, nil
}

// ParsePreyList parses a semicolon separated list of RES:ATOM ATOM ... items,
// e.g. "PHE:CG CD1 CD2;TYR:CG CD1".
func ParsePreyList(s string) (PreySpecs, error) {
	prey := make(PreySpecs)
	for _, item := range splitList(s, ";") {
		parts := strings.Split(item, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("prey %q: expected RES:ATOM ATOM ...", item)
		}
		res := strings.TrimSpace(parts[0])
		atoms := strings.Fields(strings.ReplaceAll(parts[1], ",", " "))
		prey[res] = append(prey[res], atoms...)
	}
	return prey, nil
}

// SplitNames splits a comma separated list of names, dropping empty items.
func SplitNames(s string) []string {
	return splitList(s, ",")
}

func splitList(s string, sep string) []string {
	var items []string
	for _, item := range strings.Split(s, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
