package pdb

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// minRecordLength is the last column read from an ATOM record (the Z coordinate).
const minRecordLength = 54

// Atom represents a single atom in the structure.
// It contains the columns from an ATOM record needed for distance screening.
type Atom struct {
	Name          string
	Residue       string
	Chain         string
	ResidueNumber int64
	X             float64
	Y             float64
	Z             float64
}

// ID returns a short human readable identifier, e.g. "A/ARG42/CZ".
func (a *Atom) ID() string {
	return fmt.Sprintf("%s/%s%d/%s", a.Chain, a.Residue, a.ResidueNumber, a.Name)
}

// parseAtomRecord parses a single ATOM line using the fixed column layout.
func parseAtomRecord(line string) (*Atom, error) {
	if len(line) < minRecordLength {
		return nil, errors.New("record too short")
	}

	var atom Atom
	var err error

	// https://www.wwpdb.org/documentation/file-format-content/format33/sect9.html#ATOM
	atom.Name = strings.TrimSpace(line[12:16])
	atom.Residue = strings.TrimSpace(line[17:20])
	atom.Chain = strings.TrimSpace(line[20:22])

	atom.ResidueNumber, err = strconv.ParseInt(strings.TrimSpace(line[22:26]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("residue number: %v", err)
	}

	if atom.X, err = parseCoord(line[30:38]); err != nil {
		return nil, fmt.Errorf("x: %v", err)
	}
	if atom.Y, err = parseCoord(line[38:46]); err != nil {
		return nil, fmt.Errorf("y: %v", err)
	}
	if atom.Z, err = parseCoord(line[46:54]); err != nil {
		return nil, fmt.Errorf("z: %v", err)
	}

	return &atom, nil
}

func parseCoord(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite coordinate %q", strings.TrimSpace(field))
	}
	return v, nil
}
