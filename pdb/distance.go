package pdb

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Distance returns the distance between a pair of atoms
func Distance(atom1 *Atom, atom2 *Atom) float64 {
	return math.Sqrt(math.Pow(atom1.X-atom2.X, 2) + math.Pow(atom1.Y-atom2.Y, 2) + math.Pow(atom1.Z-atom2.Z, 2))
}

// Coords is an n×3 coordinate matrix, one row per atom.
type Coords struct {
	m       *mat.Dense
	x, y, z []float64
}

// NewCoords builds the coordinate matrix for the given atoms, in order.
func NewCoords(atoms []*Atom) *Coords {
	c := &Coords{}
	if len(atoms) == 0 {
		return c
	}

	data := make([]float64, 0, 3*len(atoms))
	for _, a := range atoms {
		data = append(data, a.X, a.Y, a.Z)
	}
	c.m = mat.NewDense(len(atoms), 3, data)

	c.x = mat.Col(nil, 0, c.m)
	c.y = mat.Col(nil, 1, c.m)
	c.z = mat.Col(nil, 2, c.m)

	return c
}

// Len returns the number of rows.
func (c *Coords) Len() int {
	return len(c.x)
}

// Matrix returns the underlying matrix, nil if there are no atoms.
func (c *Coords) Matrix() *mat.Dense {
	return c.m
}

// DistancesFrom returns the euclidean distance from the point (x, y, z) to every row,
// computed column-wise over the whole matrix. tmp is scratch space of at least Len()
// elements and may be nil. The result is written to dst if it has enough capacity.
func (c *Coords) DistancesFrom(x, y, z float64, dst, tmp []float64) []float64 {
	n := c.Len()
	dst = resize(dst, n)
	tmp = resize(tmp, n)

	for i := range dst {
		dst[i] = 0
	}
	for _, axis := range [...]struct {
		col []float64
		p   float64
	}{{c.x, x}, {c.y, y}, {c.z, z}} {
		copy(tmp, axis.col)
		floats.AddConst(-axis.p, tmp)
		floats.Mul(tmp, tmp)
		floats.Add(dst, tmp)
	}
	for i, d := range dst {
		dst[i] = math.Sqrt(d)
	}

	return dst
}

func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
