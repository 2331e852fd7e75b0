package interaction

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := map[string]string{
		"1abc.pdb":          "1abc_catpi.csv",
		"data/1abc.pdb":     "data/1abc_catpi.csv",
		"data/1abc.pdb.gz":  "data/1abc_catpi.csv",
		"data/model.v2.ent": "data/model.v2_catpi.csv",
		"structure":         "structure_catpi.csv",
		"/tmp/run.1/x.pdb":  "/tmp/run.1/x_catpi.csv",
	}

	for in, expected := range tests {
		if out := OutputPath(in); out != expected {
			t.Errorf("%s: expected %s, got %s", in, expected, out)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	interactions := []Interaction{
		{Key: Key{"ARG", 1, "A", "TYR", 2, "A"}, MeanDist: 2, StdDist: 0, N: 6},
		{Key: Key{"LYS", -3, "", "PHE", 11, "B"}, MeanDist: 3.5, StdDist: 0.25, N: 7},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, interactions); err != nil {
		t.Fatal(err)
	}

	expected := "cation_resn,cation_resi,cation_chain,pi_resn,pi_resi,pi_chain,mean_dist,std_dist,n\n" +
		"ARG,1,A,TYR,2,A,2,0,6\n" +
		"LYS,-3,,PHE,11,B,3.5,0.25,7\n"
	if buf.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestWriteCSVFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_catpi.csv")
	if err := WriteCSVFile(path, nil); err != nil {
		t.Fatal(err)
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := "cation_resn,cation_resi,cation_chain,pi_resn,pi_resi,pi_chain,mean_dist,std_dist,n\n"
	if string(data) != expected {
		t.Errorf("expected only the header, got %q", data)
	}

	if err := WriteCSVFile(filepath.Join(t.TempDir(), "missing", "x.csv"), nil); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
