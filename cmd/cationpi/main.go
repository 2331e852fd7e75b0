// Command cationpi screens a PDB structure for candidate cation-π interactions
// and writes the accepted residue pairs to a CSV table next to the input file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/tikz/cationpi/config"
	"github.com/tikz/cationpi/interaction"
	"github.com/tikz/cationpi/pdb"
)

var (
	flagConfig     = ""
	flagFetch      = false
	flagFetchDir   = "."
	flagOut        = ""
	flagQuiet      = false
	flagDumpConfig = false
)

func init() {
	log.SetFlags(0)
}

func usage() {
	log.Printf("Usage: %s [flags] <pdb-file | pdb-id>\n\n", path.Base(os.Args[0]))
	log.Printf("Finds candidate cation-π interactions by distance.\n")
	flag.VisitAll(func(fl *flag.Flag) {
		var def string
		if len(fl.DefValue) > 0 {
			def = fmt.Sprintf(" (default: %s)", fl.DefValue)
		}
		log.Printf("-%s%s\n", fl.Name, def)
		log.Printf("    %s\n", fl.Usage)
	})
	os.Exit(1)
}

// options holds the raw flag values. Only the flags set on the command line are applied.
type options struct {
	residues, exclude, chains, baits, preys string

	excludeBackbone bool
	minInteractions int
	meanThreshold   float64
	stdThreshold    float64
	workers         int
}

func main() {
	c := config.CLI()
	opts := options{
		residues:        strings.Join(c.Residues, ","),
		exclude:         strings.Join(c.ExcludeAtoms, ","),
		baits:           formatBaits(c.Bait),
		preys:           formatPreys(c.Prey),
		excludeBackbone: c.ExcludeBackbone,
		minInteractions: c.MinInteractions,
		meanThreshold:   c.MeanThreshold,
		stdThreshold:    c.StdThreshold,
		workers:         c.Workers,
	}

	flag.StringVar(&flagConfig, "config", flagConfig,
		"A TOML file with search parameters. Flags given on the command line override it.")
	flag.StringVar(&opts.residues, "residues", opts.residues,
		"Comma separated residues to consider for interactions.")
	flag.BoolVar(&opts.excludeBackbone, "exclude-backbone", opts.excludeBackbone,
		"When set, backbone atoms (N, CA, C, O) are excluded.")
	flag.StringVar(&opts.exclude, "exclude-atoms", opts.exclude,
		"Comma separated atom names to exclude.")
	flag.StringVar(&opts.chains, "chains", opts.chains,
		"Comma separated chains. An interaction is kept if either side is in one of them.")
	flag.IntVar(&opts.minInteractions, "min-interactions", opts.minInteractions,
		"Minimum number of atom pairs per residue pair.")
	flag.Float64Var(&opts.meanThreshold, "mean-threshold", opts.meanThreshold,
		"Mean distance threshold.")
	flag.Float64Var(&opts.stdThreshold, "std-threshold", opts.stdThreshold,
		"Standard deviation threshold.")
	flag.StringVar(&opts.baits, "bait", opts.baits,
		"Bait atoms as RES:ATOM, comma separated.")
	flag.StringVar(&opts.preys, "prey", opts.preys,
		"Prey atoms as RES:ATOM ATOM ..., semicolon separated.")
	flag.IntVar(&opts.workers, "cpu", opts.workers,
		"The max number of goroutines computing distances. 0 uses every CPU.")
	flag.BoolVar(&flagFetch, "fetch", flagFetch,
		"When set, the argument is a PDB ID downloaded from RCSB.")
	flag.StringVar(&flagFetchDir, "fetch-dir", flagFetchDir,
		"Directory where fetched PDB files are stored.")
	flag.StringVar(&flagOut, "o", flagOut,
		"Output CSV path. Defaults to the input path with a _catpi.csv suffix.")
	flag.BoolVar(&flagQuiet, "quiet", flagQuiet,
		"When set, progress messages are not printed.")
	flag.BoolVar(&flagDumpConfig, "dump-config", flagDumpConfig,
		"Print the effective configuration as TOML and exit.")
	flag.Usage = usage
	flag.Parse()

	if flagQuiet {
		log.SetOutput(io.Discard)
	}

	if flagConfig != "" {
		loaded, err := config.Load(flagConfig, c)
		if err != nil {
			log.Fatalf("read config: %v", err)
		}
		c = loaded
	}

	err := opts.apply(&c)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := c.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	for _, res := range c.Residues {
		if !pdb.IsAminoacid(res) {
			log.Printf("WARNING: %s is not a standard aminoacid", res)
		}
	}

	if flagDumpConfig {
		if err := config.Encode(os.Stdout, c); err != nil {
			log.Fatalf("write config: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
	}

	input := flag.Arg(0)
	if flagFetch {
		input, err = pdb.Fetch(input, flagFetchDir)
		if err != nil {
			log.Fatalf("fetch: %v", err)
		}
		log.Printf("Fetched %s", input)
	}

	p, err := pdb.NewPDBFromFile(input, c.Filter())
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("Parsed %d atoms in %d residues", len(p.Atoms), p.TotalLength)

	res := interaction.Search(p.Atoms, c)
	log.Printf("%d atom pairs within %.2f Å, %d after chain filter, %d residue pairs",
		res.Pairs, c.Cutoff(), res.ChainPairs, res.Groups)
	log.Printf("%d interactions accepted", len(res.Interactions))

	out := flagOut
	if out == "" {
		out = interaction.OutputPath(input)
	}
	if err := interaction.WriteCSVFile(out, res.Interactions); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("Wrote %s", out)
}

// apply overrides c with the flags explicitly given on the command line.
func (o options) apply(c *config.Config) error {
	var err error
	flag.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "residues":
			c.Residues = config.SplitNames(o.residues)
		case "exclude-backbone":
			c.ExcludeBackbone = o.excludeBackbone
		case "exclude-atoms":
			c.ExcludeAtoms = config.SplitNames(o.exclude)
		case "chains":
			c.Chains = config.SplitNames(o.chains)
		case "min-interactions":
			c.MinInteractions = o.minInteractions
		case "mean-threshold":
			c.MeanThreshold = o.meanThreshold
		case "std-threshold":
			c.StdThreshold = o.stdThreshold
		case "cpu":
			c.Workers = o.workers
		case "bait":
			c.Bait, err = config.ParseBaitList(o.baits)
		case "prey":
			c.Prey, err = config.ParsePreyList(o.preys)
		}
	})
	return err
}

func formatBaits(baits []config.BaitSpec) string {
	items := make([]string, len(baits))
	for i, b := range baits {
		items[i] = b.String()
	}
	return strings.Join(items, ",")
}

func formatPreys(preys config.PreySpecs) string {
	var items []string
	for _, res := range preys.Residues() {
		items = append(items, res+":"+strings.Join(preys[res], " "))
	}
	return strings.Join(items, ";")
}
