package pdb

import (
	"bytes"
	"compress/gzip"
	"io/ioutil"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPDB = "./testdata/catpi.pdb"

func LoadTestFile(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return data, nil
}

func TestParseAll(t *testing.T) {
	atoms, err := ParseFile(testPDB, Filter{})
	if err != nil {
		t.Fatal(err)
	}

	expected := 33
	if len(atoms) != expected {
		t.Fatalf("expected %d atoms, got %d", expected, len(atoms))
	}

	first := atoms[0]
	if first.Name != "N" || first.Residue != "ARG" || first.Chain != "A" || first.ResidueNumber != 1 {
		t.Errorf("unexpected first atom %+v", first)
	}
	if first.X != -3 || first.Y != -3 || first.Z != -3 {
		t.Errorf("unexpected first atom coordinates %+v", first)
	}

	last := atoms[len(atoms)-1]
	if last.ID() != "B/PHE11/CD2" {
		t.Errorf("expected B/PHE11/CD2 as last atom, got %s", last.ID())
	}
	if last.X != 34.2 || last.Y != -1.212 || last.Z != 0 {
		t.Errorf("unexpected last atom coordinates %+v", last)
	}

	for i, a := range atoms {
		if a.Residue == "HOH" {
			t.Errorf("HETATM record parsed at %d", i)
		}
	}
}

func TestParseColumns(t *testing.T) {
	raw, err := LoadTestFile(testPDB)
	if err != nil {
		t.Fatalf("cannot open file: %s", err)
	}

	atoms, err := Parse(bytes.NewReader(raw), Filter{})
	if err != nil {
		t.Fatal(err)
	}

	var i int
	for _, line := range strings.Split(string(raw), "\n") {
		if !strings.HasPrefix(line, "ATOM") {
			continue
		}
		a := atoms[i]
		if a.Name != strings.TrimSpace(line[12:16]) {
			t.Errorf("line %q: expected name %q, got %q", line, strings.TrimSpace(line[12:16]), a.Name)
		}
		if a.Residue != strings.TrimSpace(line[17:20]) {
			t.Errorf("line %q: expected residue %q, got %q", line, strings.TrimSpace(line[17:20]), a.Residue)
		}
		if a.Chain != strings.TrimSpace(line[20:22]) {
			t.Errorf("line %q: expected chain %q, got %q", line, strings.TrimSpace(line[20:22]), a.Chain)
		}
		i++
	}

	if i != len(atoms) {
		t.Errorf("expected %d atoms, got %d", i, len(atoms))
	}
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		expected int
	}{
		{"none", Filter{}, 33},
		{"backbone", Filter{ExcludeBackbone: true}, 33 - 11},
		{"include atoms", Filter{IncludeAtoms: []string{"CZ", "NZ"}}, 4},
		{"include residues", Filter{IncludeResidues: []string{"TYR"}}, 12},
		{"empty include", Filter{IncludeResidues: []string{}}, 0},
		{"exclude atoms", Filter{ExcludeAtoms: []string{"CA"}}, 33 - 4},
		{"backbone and CA", Filter{ExcludeBackbone: true, ExcludeAtoms: []string{"CA"}}, 33 - 11},
		{"default search", Filter{
			IncludeResidues: []string{"LYS", "ARG", "PHE", "TRP", "TYR"},
			ExcludeBackbone: true,
			ExcludeAtoms:    []string{"CB", "NH1", "NH2", "NE1", "NE2", "OH"},
		}, 16},
	}

	for _, tt := range tests {
		atoms, err := ParseFile(testPDB, tt.filter)
		if err != nil {
			t.Fatal(err)
		}
		if len(atoms) != tt.expected {
			t.Errorf("%s: expected %d atoms, got %d", tt.name, tt.expected, len(atoms))
		}
		for _, a := range atoms {
			if !tt.filter.Keep(a) {
				t.Errorf("%s: atom %s should have been filtered", tt.name, a.ID())
			}
		}
	}
}

func TestFilterExcludesCA(t *testing.T) {
	ca := &Atom{Name: "CA", Residue: "ARG"}

	for _, f := range []Filter{
		{ExcludeAtoms: []string{"CA"}},
		{ExcludeBackbone: true},
		{ExcludeBackbone: true, ExcludeAtoms: []string{"CA"}},
		{ExcludeBackbone: true, IncludeAtoms: []string{"CA"}},
	} {
		if f.Keep(ca) {
			t.Errorf("expected CA to be excluded by %+v", f)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	good := "ATOM      7  CZ  ARG A   1       0.000   0.000   0.000  1.00 20.00           C  "

	tests := []struct {
		name string
		line string
	}{
		{"residue number", good[:22] + "   X" + good[26:]},
		{"x", good[:30] + "   abc  " + good[38:]},
		{"z", good[:46] + "        " + good[54:]},
		{"short", good[:40]},
		{"nan", good[:30] + "     NaN" + good[38:]},
	}

	for _, tt := range tests {
		raw := "REMARK\n" + good + "\n" + tt.line + "\nEND\n"
		atoms, err := Parse(strings.NewReader(raw), Filter{})
		if err == nil {
			t.Errorf("%s: expected an error", tt.name)
			continue
		}
		if atoms != nil {
			t.Errorf("%s: expected no atoms on error, got %d", tt.name, len(atoms))
		}
		if !strings.Contains(err.Error(), "line 3") {
			t.Errorf("%s: expected the line number in %q", tt.name, err)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	atoms, err := Parse(strings.NewReader("HEADER\nHETATM    1  O   HOH A 101       0.500   0.500   0.500\nEND\n"), Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(atoms) != 0 {
		t.Errorf("expected no atoms, got %d", len(atoms))
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := ParseFile("./testdata/missing.pdb", Filter{})
	if err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestParseGzip(t *testing.T) {
	raw, err := LoadTestFile(testPDB)
	if err != nil {
		t.Fatalf("cannot open file: %s", err)
	}

	path := filepath.Join(t.TempDir(), "catpi.pdb.gz")
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write(raw)
	gz.Close()
	if err := ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	atoms, err := ParseFile(path, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(atoms) != 33 {
		t.Errorf("expected %d atoms, got %d", 33, len(atoms))
	}
}

func TestChains(t *testing.T) {
	raw, err := LoadTestFile(testPDB)
	if err != nil {
		t.Fatalf("cannot open file: %s", err)
	}

	pdb, err := NewPDBFromRaw(raw, Filter{})
	if err != nil {
		t.Fatal(err)
	}

	expected := int64(5)
	if pdb.TotalLength != expected {
		t.Errorf("expected %d residues, got %d", expected, pdb.TotalLength)
	}

	res := pdb.Chains["A"][2]
	if res.Name != "Tyrosine" || len(res.Atoms) != 12 {
		t.Errorf("expected Tyrosine with 12 atoms in A-2, got %s with %d", res.Name, len(res.Atoms))
	}

	res = pdb.Chains["B"][10]
	if res.Name1 != "K" {
		t.Errorf("expected K in B-10, got %s", res.Name1)
	}
}

func TestAminoacidNames(t *testing.T) {
	for _, code := range []string{"ARG", "lys", "Phe", "TRP", "TYR"} {
		if !IsAminoacid(code) {
			t.Errorf("expected %s to be an aminoacid", code)
		}
	}
	if IsAminoacid("HOH") {
		t.Error("HOH is not an aminoacid")
	}
}

func TestDistance(t *testing.T) {
	a := &Atom{X: 1, Y: 2, Z: 3}
	b := &Atom{X: -2.5, Y: 0.25, Z: 7}

	if Distance(a, b) != Distance(b, a) {
		t.Errorf("distance is not symmetric: %f != %f", Distance(a, b), Distance(b, a))
	}

	expected := math.Sqrt(3.5*3.5 + 1.75*1.75 + 4*4)
	if math.Abs(Distance(a, b)-expected) > 1e-12 {
		t.Errorf("expected %f, got %f", expected, Distance(a, b))
	}
}

func TestDistancesFrom(t *testing.T) {
	atoms, err := ParseFile(testPDB, Filter{})
	if err != nil {
		t.Fatal(err)
	}

	coords := NewCoords(atoms)
	if coords.Len() != len(atoms) {
		t.Fatalf("expected %d rows, got %d", len(atoms), coords.Len())
	}
	if r, c := coords.Matrix().Dims(); r != len(atoms) || c != 3 {
		t.Fatalf("expected a %dx3 matrix, got %dx%d", len(atoms), r, c)
	}

	for _, from := range atoms {
		dists := coords.DistancesFrom(from.X, from.Y, from.Z, nil, nil)
		for i, to := range atoms {
			if math.Abs(dists[i]-Distance(from, to)) > 1e-9 {
				t.Errorf("%s-%s: expected %f, got %f", from.ID(), to.ID(), Distance(from, to), dists[i])
			}
		}
	}

	empty := NewCoords(nil)
	if d := empty.DistancesFrom(0, 0, 0, nil, nil); len(d) != 0 {
		t.Errorf("expected no distances, got %d", len(d))
	}
}

func TestFetch(t *testing.T) {
	raw, err := LoadTestFile(testPDB)
	if err != nil {
		t.Fatalf("cannot open file: %s", err)
	}

	var requests int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/1ABC.pdb" {
			http.NotFound(w, r)
			return
		}
		w.Write(raw)
	}))
	defer ts.Close()

	defer func(url string) { RCSBURL = url }(RCSBURL)
	RCSBURL = ts.URL + "/"

	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		path, err := Fetch("1abc", dir)
		if err != nil {
			t.Fatal(err)
		}
		if path != filepath.Join(dir, "1abc.pdb") {
			t.Errorf("unexpected path %s", path)
		}
	}
	if requests != 1 {
		t.Errorf("expected a single download, got %d", requests)
	}

	p, err := NewPDBFromFile(filepath.Join(dir, "1abc.pdb"), Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Atoms) != 33 {
		t.Errorf("expected %d atoms, got %d", 33, len(p.Atoms))
	}

	if _, err := Fetch("2xyz", dir); err == nil {
		t.Error("expected an error for a missing entry")
	}
	if _, err := os.Stat(filepath.Join(dir, "2xyz.pdb")); !os.IsNotExist(err) {
		t.Error("a failed download should not leave a file")
	}

	if _, err := Fetch("toolong", dir); err == nil {
		t.Error("expected an error for an invalid ID")
	}
}
