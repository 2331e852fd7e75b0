package pdb

// BackboneAtoms are the atom names dropped when Filter.ExcludeBackbone is set.
var BackboneAtoms = []string{"N", "O", "C", "CA"}

// Filter selects which ATOM records are kept by the parser.
// A nil include list means no restriction, while an empty non-nil list keeps nothing.
type Filter struct {
	IncludeAtoms    []string
	IncludeResidues []string
	ExcludeBackbone bool
	ExcludeAtoms    []string
}

type predicate func(*Atom) bool

// predicates returns the filter as an ordered pipeline:
// backbone exclusion, atom inclusion, residue inclusion, atom exclusion.
func (f Filter) predicates() []predicate {
	var preds []predicate

	if f.ExcludeBackbone {
		backbone := stringSet(BackboneAtoms)
		preds = append(preds, func(a *Atom) bool { return !backbone[a.Name] })
	}

	if f.IncludeAtoms != nil {
		atoms := stringSet(f.IncludeAtoms)
		preds = append(preds, func(a *Atom) bool { return atoms[a.Name] })
	}

	if f.IncludeResidues != nil {
		residues := stringSet(f.IncludeResidues)
		preds = append(preds, func(a *Atom) bool { return residues[a.Residue] })
	}

	if len(f.ExcludeAtoms) > 0 {
		excluded := stringSet(f.ExcludeAtoms)
		preds = append(preds, func(a *Atom) bool { return !excluded[a.Name] })
	}

	return preds
}

// Keep reports whether the atom passes every stage of the filter.
func (f Filter) Keep(a *Atom) bool {
	return keep(f.predicates(), a)
}

func keep(preds []predicate, a *Atom) bool {
	for _, p := range preds {
		if !p(a) {
			return false
		}
	}
	return true
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
