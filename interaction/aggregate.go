package interaction

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Key identifies a cation residue and π residue pair.
type Key struct {
	CationResidue       string
	CationResidueNumber int64
	CationChain         string
	PiResidue           string
	PiResidueNumber     int64
	PiChain             string
}

func (k Key) less(o Key) bool {
	switch {
	case k.CationResidue != o.CationResidue:
		return k.CationResidue < o.CationResidue
	case k.CationResidueNumber != o.CationResidueNumber:
		return k.CationResidueNumber < o.CationResidueNumber
	case k.CationChain != o.CationChain:
		return k.CationChain < o.CationChain
	case k.PiResidue != o.PiResidue:
		return k.PiResidue < o.PiResidue
	case k.PiResidueNumber != o.PiResidueNumber:
		return k.PiResidueNumber < o.PiResidueNumber
	}
	return k.PiChain < o.PiChain
}

// Interaction summarizes the atom pair distances between a cation and a π residue.
type Interaction struct {
	Key
	MeanDist float64
	StdDist  float64
	N        int
}

func pairKey(p Pair) Key {
	return Key{
		CationResidue:       p.Cation.Residue,
		CationResidueNumber: p.Cation.ResidueNumber,
		CationChain:         p.Cation.Chain,
		PiResidue:           p.Pi.Residue,
		PiResidueNumber:     p.Pi.ResidueNumber,
		PiChain:             p.Pi.Chain,
	}
}

// Aggregate groups the pairs by residue pair and computes the mean, the sample standard
// deviation and the number of distances of every group. A group with a single distance
// has a NaN standard deviation. Groups are returned ordered by key.
func Aggregate(pairs []Pair) []Interaction {
	groups := make(map[Key][]float64)
	for _, p := range pairs {
		k := pairKey(p)
		groups[k] = append(groups[k], p.Distance)
	}

	interactions := make([]Interaction, 0, len(groups))
	for k, dists := range groups {
		// summation order must not depend on the input order
		sort.Float64s(dists)

		i := Interaction{Key: k, N: len(dists)}
		if len(dists) == 1 {
			i.MeanDist, i.StdDist = dists[0], math.NaN()
		} else {
			i.MeanDist, i.StdDist = stat.MeanStdDev(dists, nil)
		}
		interactions = append(interactions, i)
	}

	sort.Slice(interactions, func(a, b int) bool {
		return interactions[a].Key.less(interactions[b].Key)
	})

	return interactions
}

// Accept keeps the interactions with a mean distance below meanThreshold, a standard
// deviation below stdThreshold and at least minInteractions distances.
func Accept(interactions []Interaction, minInteractions int, meanThreshold, stdThreshold float64) []Interaction {
	accepted := []Interaction{}
	for _, i := range interactions {
		if i.MeanDist < meanThreshold && i.StdDist < stdThreshold && i.N >= minInteractions {
			accepted = append(accepted, i)
		}
	}
	return accepted
}

// Sort orders interactions by cation chain and then by cation residue number.
// Ties keep their relative order.
func Sort(interactions []Interaction) {
	sort.SliceStable(interactions, func(a, b int) bool {
		ia, ib := interactions[a], interactions[b]
		if ia.CationChain != ib.CationChain {
			return ia.CationChain < ib.CationChain
		}
		return ia.CationResidueNumber < ib.CationResidueNumber
	})
}
