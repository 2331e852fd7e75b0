package interaction

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OutputSuffix replaces the input file extension in OutputPath.
const OutputSuffix = "_catpi.csv"

var header = []string{
	"cation_resn", "cation_resi", "cation_chain",
	"pi_resn", "pi_resi", "pi_chain",
	"mean_dist", "std_dist", "n",
}

// OutputPath derives the table path from the input structure path, e.g.
// "data/1abc.pdb" and "data/1abc.pdb.gz" both give "data/1abc_catpi.csv".
func OutputPath(input string) string {
	base := strings.TrimSuffix(input, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base)) + OutputSuffix
}

// WriteCSV writes the interactions as a comma separated table with a header row.
func WriteCSV(w io.Writer, interactions []Interaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}

	for _, i := range interactions {
		record := []string{
			i.CationResidue,
			strconv.FormatInt(i.CationResidueNumber, 10),
			i.CationChain,
			i.PiResidue,
			strconv.FormatInt(i.PiResidueNumber, 10),
			i.PiChain,
			strconv.FormatFloat(i.MeanDist, 'g', -1, 64),
			strconv.FormatFloat(i.StdDist, 'g', -1, 64),
			strconv.Itoa(i.N),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the interactions table to path.
func WriteCSVFile(path string, interactions []Interaction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = WriteCSV(f, interactions)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %v", path, err)
	}

	return nil
}
