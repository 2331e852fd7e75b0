package pdb

import (
	"strings"
)

var residueNames = [...][3]string{
	{"Alanine", "Ala", "A"},
	{"Arginine", "Arg", "R"},
	{"Asparagine", "Asn", "N"},
	{"Aspartic acid", "Asp", "D"},
	{"Cysteine", "Cys", "C"},
	{"Glutamic acid", "Glu", "E"},
	{"Glutamine", "Gln", "Q"},
	{"Glycine", "Gly", "G"},
	{"Histidine", "His", "H"},
	{"Isoleucine", "Ile", "I"},
	{"Leucine", "Leu", "L"},
	{"Lysine", "Lys", "K"},
	{"Methionine", "Met", "M"},
	{"Phenylalanine", "Phe", "F"},
	{"Proline", "Pro", "P"},
	{"Serine", "Ser", "S"},
	{"Threonine", "Thr", "T"},
	{"Tryptophan", "Trp", "W"},
	{"Tyrosine", "Tyr", "Y"},
	{"Valine", "Val", "V"},
}

// Residue groups the atoms of a single residue in a chain.
type Residue struct {
	Chain    string
	Position int64
	Name     string
	Name1    string
	Name3    string
	Atoms    []*Atom
}

// IsAminoacid returns true if the given three letter code (any case) is a standard aminoacid.
func IsAminoacid(code string) bool {
	_, abbrv3, _ := AminoacidNames(code)
	return abbrv3 != "Unk"
}

// AminoacidNames receives a name and returns all the possible representations as strings.
// The name is case-insensitive and can be either a full aminoacid name, one or three letter abbreviation.
func AminoacidNames(input string) (string, string, string) {
	s := strings.ToLower(input)
	for _, res := range residueNames {
		for _, n := range res {
			if strings.ToLower(n) == s {
				return res[0], res[1], res[2]
			}
		}
	}

	return input, "Unk", "X"
}

// NewResidue constructs a new residue given a chain, position and aminoacid name.
func NewResidue(chain string, pos int64, input string) *Residue {
	name, abbrv3, abbrv1 := AminoacidNames(input)

	return &Residue{
		Chain:    chain,
		Position: pos,
		Name:     name,
		Name1:    abbrv1,
		Name3:    abbrv3,
	}
}

// ExtractChains groups the parsed atoms into residues per chain.
func (pdb *PDB) ExtractChains() {
	chains := make(map[string]map[int64]*Residue)

	for _, atom := range pdb.Atoms {
		if _, ok := chains[atom.Chain]; !ok {
			chains[atom.Chain] = make(map[int64]*Residue)
		}

		res, ok := chains[atom.Chain][atom.ResidueNumber]
		if !ok {
			res = NewResidue(atom.Chain, atom.ResidueNumber, atom.Residue)
			chains[atom.Chain][atom.ResidueNumber] = res
		}
		res.Atoms = append(res.Atoms, atom)
	}

	pdb.Chains = chains
	pdb.TotalLength = 0
	for _, chain := range chains {
		pdb.TotalLength += int64(len(chain))
	}
}
