package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maseology/mmio"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	wwvec "github.com/MatthewPierson90/WaterNet-vectorize"
	"github.com/MatthewPierson90/WaterNet-vectorize/basin"
	"github.com/MatthewPierson90/WaterNet-vectorize/vector"
)

var runConfigFP string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Vectorize a batch of basins from a YAML config",
	Run:   runBatch,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigFP, "config", "c", "wwvec.yaml", "batch config file")
	rootCmd.AddCommand(runCmd)
}

// batchConfig is the YAML batch description: where outputs go, how many
// workers to fan out over, and one entry per basin.
type batchConfig struct {
	OutDir  string        `yaml:"out_dir"`
	Workers int           `yaml:"workers"`
	Basins  []basinConfig `yaml:"basins"`
}

type basinConfig struct {
	Name      string `yaml:"name"`
	Basin     string `yaml:"basin"`     // gob bundle of the basin rasters
	Reference string `yaml:"reference"` // geojson of reference waterways
}

func runBatch(cmd *cobra.Command, args []string) {
	cfg, err := loadBatchConfig(runConfigFP)
	if err != nil {
		fatalf("read config: %v", err)
	}

	jobs := make([]wwvec.Job, 0, len(cfg.Basins))
	for _, bc := range cfg.Basins {
		b, ref, err := loadBasin(bc)
		if err != nil {
			fatalf("basin %s: %v", bc.Name, err)
		}
		jobs = append(jobs, wwvec.Job{Name: bc.Name, B: b, Ref: ref})
	}

	var outputs []wwvec.Output
	if cfg.Workers > 1 {
		outputs = wwvec.VectorizeConcurrent(jobs, cfg.Workers)
	} else {
		outputs = wwvec.VectorizeSerial(jobs)
	}

	mmio.MakeDir(cfg.OutDir)
	nerr := 0
	for _, o := range outputs {
		if o.Err != nil {
			fmt.Fprintf(os.Stderr, "basin %s: %v\n", o.Name, o.Err)
			nerr++
			continue
		}
		data, err := json.Marshal(o.FC)
		if err != nil {
			fatalf("basin %s: %v", o.Name, err)
		}
		fp := filepath.Join(cfg.OutDir, o.Name+".geojson")
		if err := os.WriteFile(fp, data, 0644); err != nil {
			fatalf("basin %s: %v", o.Name, err)
		}
		fmt.Printf(" %s: %d lines, %d components merged\n", fp, len(o.FC.Features), len(o.Stitch.Seen)-1)
	}
	if nerr > 0 {
		os.Exit(1)
	}
}

func loadBatchConfig(fp string) (*batchConfig, error) {
	data, err := os.ReadFile(fp)
	if err != nil {
		return nil, err
	}
	var cfg batchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Basins) == 0 {
		return nil, fmt.Errorf("config %s lists no basins", fp)
	}
	return &cfg, nil
}

func loadBasin(bc basinConfig) (*basin.Data, []orb.LineString, error) {
	if _, ok := mmio.FileExists(bc.Basin); !ok {
		return nil, nil, fmt.Errorf("basin file not found: %s", bc.Basin)
	}
	b, err := basin.LoadGob(bc.Basin)
	if err != nil {
		return nil, nil, err
	}
	if err := b.Check(); err != nil {
		return nil, nil, err
	}

	var ref []orb.LineString
	if bc.Reference != "" {
		data, err := os.ReadFile(bc.Reference)
		if err != nil {
			return nil, nil, err
		}
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, nil, err
		}
		ref = vector.ReferenceLines(fc)
	}
	return b, ref, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
