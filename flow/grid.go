package flow

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/nilsmagnus/grib/griblib"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/location"
)

// Grid is a wind field sampled on a regular grid. U and V are the east and
// north components of the air movement, indexed [row][column]; row 0 lies
// on Origin and rows go north, columns go east, Spacing metres apart.
type Grid struct {
	File    string
	Origin  location.Location
	Spacing float64
	U       [][]float64
	V       [][]float64
}

var errNoWind = errors.New("no 10 m wind messages")

func buildGrid(data []float64, nLat, nLon uint32) [][]float64 {

	grid := make([][]float64, nLat)

	p := 0
	for j := uint32(0); j < nLat; j++ {
		grid[j] = make([]float64, nLon)
		for i := uint32(0); i < nLon; i++ {
			grid[j][i] = data[p]
			p++
		}
	}
	return grid
}

// LoadGrib reads the 10 m U and V wind messages of a GRIB2 file and lays
// them on the course grid.
func LoadGrib(file string, origin location.Location, spacing float64) (*Grid, error) {
	g := &Grid{File: file, Origin: origin, Spacing: spacing}

	gribfile, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer gribfile.Close()

	messages, err := griblib.ReadMessages(gribfile)
	if err != nil {
		return nil, fmt.Errorf("grib %s: %w", file, err)
	}
	for _, message := range messages {
		if message.Section0.Discipline == uint8(0) && message.Section4.ProductDefinitionTemplate.ParameterCategory == uint8(2) && message.Section4.ProductDefinitionTemplate.FirstSurface.Type == 103 && message.Section4.ProductDefinitionTemplate.FirstSurface.Value == 10 {
			grid0, ok := message.Section3.Definition.(*griblib.Grid0)
			if !ok {
				continue
			}
			if message.Section4.ProductDefinitionTemplate.ParameterNumber == 2 {
				g.U = buildGrid(message.Section7.Data, grid0.Nj, grid0.Ni)
			} else if message.Section4.ProductDefinitionTemplate.ParameterNumber == 3 {
				g.V = buildGrid(message.Section7.Data, grid0.Nj, grid0.Ni)
			}
		}
	}
	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("grib %s: %w", file, err)
	}
	return g, nil
}

func (g *Grid) validate() error {
	if len(g.U) == 0 || len(g.V) == 0 {
		return errNoWind
	}
	if len(g.U) != len(g.V) || len(g.U[0]) != len(g.V[0]) {
		return fmt.Errorf("U and V grids differ in size")
	}
	if g.Spacing <= 0 {
		return fmt.Errorf("grid spacing must be positive")
	}
	return nil
}

func bilinearInterpolate(x float64, y float64, g00 []float64, g10 []float64, g01 []float64, g11 []float64) (float64, float64) {

	rx := (1 - x)
	ry := (1 - y)

	a := rx * ry
	b := x * ry
	c := rx * y
	d := x * y

	u := g00[0]*a + g10[0]*b + g01[0]*c + g11[0]*d
	v := g00[1]*a + g10[1]*b + g01[1]*c + g11[1]*d

	return u, v
}

func clampIndex(f float64, n int) (int, float64) {
	if f <= 0 {
		return 0, 0
	}
	if f >= float64(n-1) {
		if n > 1 {
			return n - 2, 1
		}
		return 0, 0
	}
	i := int(f)
	return i, f - float64(i)
}

func (g *Grid) interpolate(l location.Location) (float64, float64) {
	rows := len(g.U)
	cols := len(g.U[0])

	fi, y := clampIndex((l.Y-g.Origin.Y)/g.Spacing, rows)
	fj, x := clampIndex((l.X-g.Origin.X)/g.Spacing, cols)

	fi1, fj1 := fi, fj
	if rows > 1 {
		fi1 = fi + 1
	}
	if cols > 1 {
		fj1 = fj + 1
	}

	u, v := bilinearInterpolate(x, y,
		[]float64{g.U[fi][fj], g.V[fi][fj]},
		[]float64{g.U[fi][fj1], g.V[fi][fj1]},
		[]float64{g.U[fi1][fj], g.V[fi1][fj]},
		[]float64{g.U[fi1][fj1], g.V[fi1][fj1]})

	return u, v
}

func toFlow(u, v float64) (angle.Angle, float64) {
	d := math.Sqrt(u*u + v*v)
	if d == 0 {
		return angle.Zero, 0
	}
	return angle.New(vectorToDegrees(u, v, d)), d
}

// FlowAt interpolates the field; locations off the grid take the edge values.
func (g *Grid) FlowAt(l location.Location) (angle.Angle, float64) {
	return toFlow(g.interpolate(l))
}

// MeanFlowBearing is the bearing of the mean wind vector over the grid.
func (g *Grid) MeanFlowBearing() angle.Angle {
	var u, v float64
	for j := range g.U {
		for i := range g.U[j] {
			u += g.U[j][i]
			v += g.V[j][i]
		}
	}
	a, _ := toFlow(u, v)
	return a
}

func (g *Grid) MeanFlowBearingAt(l location.Location) angle.Angle {
	a, _ := g.FlowAt(l)
	return a
}
