package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"
)

// TOML keys.
const (
	keyResidues        = "residues"
	keyExcludeBackbone = "exclude_backbone"
	keyExcludeAtoms    = "exclude_atoms"
	keyChains          = "chains"
	keyBait            = "bait_atoms"
	keyPrey            = "prey_atoms"
	keyMinInteractions = "min_interactions"
	keyMeanThreshold   = "mean_threshold"
	keyStdThreshold    = "std_threshold"
	keyWorkers         = "workers"
)

// Load reads a TOML configuration file. Keys present in the file replace the values of base,
// the rest are kept. The result is validated.
func Load(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, err
	}
	defer f.Close()

	c, err := Decode(f, base)
	if err != nil {
		return base, fmt.Errorf("%s: %v", path, err)
	}

	return c, nil
}

// Decode reads TOML from r over base. See Load.
func Decode(r io.Reader, base Config) (Config, error) {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return base, fmt.Errorf("parse TOML: %v", err)
	}

	c := base.clone()

	for key, dst := range map[string]*[]string{
		keyResidues:     &c.Residues,
		keyExcludeAtoms: &c.ExcludeAtoms,
		keyChains:       &c.Chains,
	} {
		if !tree.Has(key) {
			continue
		}
		*dst, err = stringList(tree.Get(key))
		if err != nil {
			return base, fmt.Errorf("%s: %v", key, err)
		}
	}

	if tree.Has(keyExcludeBackbone) {
		v, ok := tree.Get(keyExcludeBackbone).(bool)
		if !ok {
			return base, fmt.Errorf("%s: expected a boolean", keyExcludeBackbone)
		}
		c.ExcludeBackbone = v
	}

	for key, dst := range map[string]*int{
		keyMinInteractions: &c.MinInteractions,
		keyWorkers:         &c.Workers,
	} {
		if !tree.Has(key) {
			continue
		}
		v, ok := tree.Get(key).(int64)
		if !ok {
			return base, fmt.Errorf("%s: expected an integer", key)
		}
		*dst = int(v)
	}

	for key, dst := range map[string]*float64{
		keyMeanThreshold: &c.MeanThreshold,
		keyStdThreshold:  &c.StdThreshold,
	} {
		if !tree.Has(key) {
			continue
		}
		switch v := tree.Get(key).(type) {
		case float64:
			*dst = v
		case int64:
			*dst = float64(v)
		default:
			return base, fmt.Errorf("%s: expected a number", key)
		}
	}

	if tree.Has(keyBait) {
		c.Bait, err = baitList(tree.Get(keyBait))
		if err != nil {
			return base, fmt.Errorf("%s: %v", keyBait, err)
		}
	}

	if tree.Has(keyPrey) {
		sub, ok := tree.Get(keyPrey).(*toml.Tree)
		if !ok {
			return base, fmt.Errorf("%s: expected a table", keyPrey)
		}
		c.Prey = make(PreySpecs)
		for _, res := range sub.Keys() {
			atoms, err := stringList(sub.Get(res))
			if err != nil {
				return base, fmt.Errorf("%s.%s: %v", keyPrey, res, err)
			}
			c.Prey[res] = atoms
		}
	}

	if err := c.Validate(); err != nil {
		return base, err
	}

	return c, nil
}

// Encode writes c as TOML in the format read by Decode.
func Encode(w io.Writer, c Config) error {
	baits := make([]map[string]interface{}, 0, len(c.Bait))
	for _, b := range c.Bait {
		baits = append(baits, map[string]interface{}{"residue": b.Residue, "atom": b.Atom})
	}

	prey := make(map[string]interface{}, len(c.Prey))
	for res, atoms := range c.Prey {
		prey[res] = toInterfaces(atoms)
	}

	m := map[string]interface{}{
		keyResidues:        toInterfaces(c.Residues),
		keyExcludeBackbone: c.ExcludeBackbone,
		keyExcludeAtoms:    toInterfaces(c.ExcludeAtoms),
		keyBait:            baits,
		keyPrey:            prey,
		keyMinInteractions: int64(c.MinInteractions),
		keyMeanThreshold:   c.MeanThreshold,
		keyStdThreshold:    c.StdThreshold,
		keyWorkers:         int64(c.Workers),
	}
	if c.Chains != nil {
		m[keyChains] = toInterfaces(c.Chains)
	}

	tree, err := toml.TreeFromMap(m)
	if err != nil {
		return err
	}

	_, err = tree.WriteTo(w)
	return err
}

func (c Config) clone() Config {
	out := c
	out.Residues = cloneStrings(c.Residues)
	out.ExcludeAtoms = cloneStrings(c.ExcludeAtoms)
	out.Chains = cloneStrings(c.Chains)
	out.Bait = append([]BaitSpec(nil), c.Bait...)
	if c.Prey != nil {
		out.Prey = make(PreySpecs, len(c.Prey))
		for res, atoms := range c.Prey {
			out.Prey[res] = cloneStrings(atoms)
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func stringList(v interface{}) ([]string, error) {
	switch items := v.(type) {
	case []string:
		return cloneStrings(items), nil
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a string, got %v", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected an array of strings")
}

func baitList(v interface{}) ([]BaitSpec, error) {
	tables, ok := v.([]*toml.Tree)
	if !ok {
		return nil, fmt.Errorf("expected an array of tables")
	}

	baits := make([]BaitSpec, 0, len(tables))
	for _, t := range tables {
		res, _ := t.Get("residue").(string)
		atom, _ := t.Get("atom").(string)
		baits = append(baits, BaitSpec{Residue: res, Atom: atom})
	}
	return baits, nil
}

func toInterfaces(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
