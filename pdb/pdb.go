package pdb

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/tikz/cationpi/http"
)

// RCSBURL is the base download URL for PDB files.
var RCSBURL = "https://files.rcsb.org/download/"

// PDB represents a parsed structure.
type PDB struct {
	ID          string                        // PDB ID, if known
	LocalPath   string                        // local path for the PDB file
	Atoms       []*Atom                       // filtered ATOM records in the structure
	Chains      map[string]map[int64]*Residue // chain ID and position to residue
	TotalLength int64                         // total number of residues across chains
}

// NewPDBFromFile constructs a new instance from a local file, keeping only atoms that pass the filter.
func NewPDBFromFile(path string, f Filter) (*PDB, error) {
	atoms, err := ParseFile(path, f)
	if err != nil {
		return nil, err
	}

	pdb := PDB{LocalPath: path, Atoms: atoms}
	pdb.ExtractChains()

	return &pdb, nil
}

// NewPDBFromRaw constructs a new instance from raw bytes, and only extracts ATOM records.
func NewPDBFromRaw(raw []byte, f Filter) (*PDB, error) {
	atoms, err := Parse(bytes.NewReader(raw), f)
	if err != nil {
		return nil, fmt.Errorf("parse: %v", err)
	}

	pdb := PDB{Atoms: atoms}
	pdb.ExtractChains()

	return &pdb, nil
}

// Fetch downloads the PDB file for the given ID from RCSB into dir and returns its path.
// The download is skipped if the file already exists.
func Fetch(pdbID string, dir string) (string, error) {
	pdbID = strings.ToLower(strings.TrimSpace(pdbID))
	if len(pdbID) != 4 {
		return "", fmt.Errorf("invalid PDB ID %q", pdbID)
	}

	path := filepath.Join(dir, pdbID+".pdb")
	_, err := os.Stat(path)
	if err == nil {
		return path, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	raw, err := http.Get(RCSBURL + strings.ToUpper(pdbID) + ".pdb")
	if err != nil {
		return "", fmt.Errorf("download PDB file: %v", err)
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	err = ioutil.WriteFile(path, raw, 0644)
	if err != nil {
		return "", fmt.Errorf("write PDB file: %v", err)
	}

	return path, nil
}
