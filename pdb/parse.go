package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const atomRecord = "ATOM"

// Parse reads PDB text from r and returns the ATOM records that pass the filter,
// in file order. Any malformed ATOM record aborts the whole parse.
func Parse(r io.Reader, f Filter) ([]*Atom, error) {
	preds := f.predicates()
	atoms := []*Atom{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var n int
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, atomRecord) {
			continue
		}

		atom, err := parseAtomRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", n, err)
		}

		if keep(preds, atom) {
			atoms = append(atoms, atom)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %v", err)
	}

	return atoms, nil
}

// ParseFile opens and parses a PDB file. Files ending in ".gz" are decompressed.
func ParseFile(path string, f Filter) ([]*Atom, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("gzip: %v", err)
		}
		defer gz.Close()
		r = gz
	}

	atoms, err := Parse(r, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %v", path, err)
	}

	return atoms, nil
}
