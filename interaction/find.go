package interaction

import (
	"fmt"

	"github.com/tikz/cationpi/config"
	"github.com/tikz/cationpi/pdb"
)

// Result holds the accepted interactions of a search along with the size of each stage.
type Result struct {
	Atoms        int // atoms kept by the parser
	Pairs        int // atom pairs within the cutoff
	ChainPairs   int // atom pairs left after the chain filter
	Groups       int // residue pairs
	Interactions []Interaction
}

// Find parses the PDB file at path and returns the accepted cation-π interactions,
// sorted by cation chain and residue number.
func Find(path string, c config.Config) ([]Interaction, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %v", err)
	}

	atoms, err := pdb.ParseFile(path, c.Filter())
	if err != nil {
		return nil, err
	}

	return Search(atoms, c).Interactions, nil
}

// Search runs the distance, chain filter, aggregation, threshold and sort stages
// over already parsed atoms.
func Search(atoms []*pdb.Atom, c config.Config) Result {
	pairs := Compute(atoms, c.Bait, c.Prey, c.Cutoff(), c.Workers)
	chainPairs := FilterChains(pairs, c.Chains)
	groups := Aggregate(chainPairs)

	accepted := Accept(groups, c.MinInteractions, c.MeanThreshold, c.StdThreshold)
	Sort(accepted)

	return Result{
		Atoms:        len(atoms),
		Pairs:        len(pairs),
		ChainPairs:   len(chainPairs),
		Groups:       len(groups),
		Interactions: accepted,
	}
}
