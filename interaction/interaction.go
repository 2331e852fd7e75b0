// Package interaction screens a structure for cation-π interactions by distance.
//
// Bait (cation) atoms are matched against prey (aromatic ring) atoms, the atom pairs
// within a cutoff are grouped per residue pair and the groups are accepted by the mean
// and standard deviation of their distances and by the number of observations.
package interaction

import (
	"runtime"
	"sync"

	"github.com/tikz/cationpi/config"
	"github.com/tikz/cationpi/pdb"
)

// AtomID identifies one side of an atom pair.
type AtomID struct {
	Atom          string
	Residue       string
	ResidueNumber int64
	Chain         string
}

func atomID(a *pdb.Atom) AtomID {
	return AtomID{
		Atom:          a.Name,
		Residue:       a.Residue,
		ResidueNumber: a.ResidueNumber,
		Chain:         a.Chain,
	}
}

// Pair is a bait and prey atom pair within the cutoff distance.
type Pair struct {
	Cation   AtomID
	Pi       AtomID
	Distance float64
}

// Baits returns the atoms matching a bait spec, in order.
func Baits(atoms []*pdb.Atom, specs []config.BaitSpec) []*pdb.Atom {
	set := make(map[config.BaitSpec]bool, len(specs))
	for _, s := range specs {
		set[s] = true
	}

	var baits []*pdb.Atom
	for _, a := range atoms {
		if set[config.BaitSpec{Residue: a.Residue, Atom: a.Name}] {
			baits = append(baits, a)
		}
	}
	return baits
}

// Preys returns the atoms whose name is registered for their residue, in order.
func Preys(atoms []*pdb.Atom, specs config.PreySpecs) []*pdb.Atom {
	set := make(map[string]map[string]bool, len(specs))
	for res, names := range specs {
		set[res] = make(map[string]bool, len(names))
		for _, n := range names {
			set[res][n] = true
		}
	}

	var preys []*pdb.Atom
	for _, a := range atoms {
		if set[a.Residue][a.Name] {
			preys = append(preys, a)
		}
	}
	return preys
}

// Compute returns every bait and prey atom pair closer than cutoff, ordered by bait
// and then by prey as they appear in atoms. An atom matching both specs takes both roles,
// but is never paired with itself.
// Distance rows are computed by workers goroutines, or one per CPU if workers <= 0.
func Compute(atoms []*pdb.Atom, baits []config.BaitSpec, preys config.PreySpecs, cutoff float64, workers int) []Pair {
	bait := Baits(atoms, baits)
	prey := Preys(atoms, preys)
	if len(bait) == 0 || len(prey) == 0 {
		return []Pair{}
	}

	coords := pdb.NewCoords(prey)
	preyIDs := make([]AtomID, len(prey))
	for i, a := range prey {
		preyIDs[i] = atomID(a)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(bait) {
		workers = len(bait)
	}

	rows := make([][]Pair, len(bait))
	jobs := make(chan int, workers*2)
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dists := make([]float64, coords.Len())
			tmp := make([]float64, coords.Len())
			for j := range jobs {
				b := bait[j]
				dists = coords.DistancesFrom(b.X, b.Y, b.Z, dists, tmp)

				cation := atomID(b)
				var row []Pair
				for k, d := range dists {
					if d < cutoff && prey[k] != b {
						row = append(row, Pair{Cation: cation, Pi: preyIDs[k], Distance: d})
					}
				}
				rows[j] = row
			}
		}()
	}

	for j := range bait {
		jobs <- j
	}
	close(jobs)
	wg.Wait()

	pairs := []Pair{}
	for _, row := range rows {
		pairs = append(pairs, row...)
	}
	return pairs
}

// FilterChains keeps the pairs where either the cation or the π atom lies in one of chains.
// No chains keeps every pair.
func FilterChains(pairs []Pair, chains []string) []Pair {
	if len(chains) == 0 {
		return pairs
	}

	set := make(map[string]bool, len(chains))
	for _, c := range chains {
		set[c] = true
	}

	kept := []Pair{}
	for _, p := range pairs {
		if set[p.Cation.Chain] || set[p.Pi.Chain] {
			kept = append(kept, p)
		}
	}
	return kept
}
