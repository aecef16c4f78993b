// Package basin bundles the per-basin rasters handed over by the
// upstream model: component labels, water-presence probability,
// elevation, model-confidence weight and the thinned skeleton mask,
// together with the basin's spatial definition.
package basin

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
)

// Data is one basin's worth of rasters. Comp and Weight are mutated in
// place by the stitcher; Thin is consumed read-only by the tracer.
type Data struct {
	GD     *grid.Definition
	Comp   *grid.Ints   // component labels, 0 = unassigned
	Thin   *grid.Ints   // 0 background, 1 skeleton, 2 reference-proximity marker
	Prob   *grid.Floats // water-presence probability [0,1]
	Elev   *grid.Floats // elevation
	Weight *grid.Floats // confidence-derived cost, zeroed along committed paths
	Main   int          // label of the already-connected network
}

// Check validates shape consistency and the presence of the main
// component. The core assumes a checked basin; run this at the loading
// boundary.
func (b *Data) Check() error {
	if b.GD == nil || b.Comp == nil || b.Thin == nil || b.Prob == nil || b.Elev == nil || b.Weight == nil {
		return fmt.Errorf("basin: incomplete data bundle")
	}
	nr, nc := b.Comp.Nrow, b.Comp.Ncol
	if err := b.GD.Check(nr, nc); err != nil {
		return err
	}
	chk := func(name string, gnr, gnc int) error {
		if gnr != nr || gnc != nc {
			return fmt.Errorf("basin: %s raster is %dx%d, component raster is %dx%d", name, gnr, gnc, nr, nc)
		}
		return nil
	}
	if err := chk("thin", b.Thin.Nrow, b.Thin.Ncol); err != nil {
		return err
	}
	if err := chk("probability", b.Prob.Nrow, b.Prob.Ncol); err != nil {
		return err
	}
	if err := chk("elevation", b.Elev.Nrow, b.Elev.Ncol); err != nil {
		return err
	}
	if err := chk("weight", b.Weight.Nrow, b.Weight.Ncol); err != nil {
		return err
	}
	if b.Main <= 0 {
		return fmt.Errorf("basin: main component %d is not a positive label", b.Main)
	}
	if !b.Comp.Any(func(v int) bool { return v == b.Main }) {
		return fmt.Errorf("basin: main component %d not present in component raster", b.Main)
	}
	return nil
}

// Components returns the distinct positive labels in row-major
// first-appearance order.
func (b *Data) Components() []int {
	seen := make(map[int]bool)
	var o []int
	for _, v := range b.Comp.V {
		if v > 0 && !seen[v] {
			seen[v] = true
			o = append(o, v)
		}
	}
	return o
}

func (b *Data) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" basin.Save %v", err)
	}
	if err := gob.NewEncoder(f).Encode(b); err != nil {
		f.Close()
		return fmt.Errorf(" basin.Save %v", err)
	}
	return f.Close()
}

func LoadGob(fp string) (*Data, error) {
	var b Data
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}
