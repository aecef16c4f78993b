package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MatthewPierson90/WaterNet-vectorize/basin"
)

var checkCmd = &cobra.Command{
	Use:   "check <basin.gob>",
	Short: "Validate a basin bundle and print a summary",
	Args:  cobra.ExactArgs(1),
	Run:   runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	b, err := basin.LoadGob(args[0])
	if err != nil {
		fatalf("load: %v", err)
	}
	if err := b.Check(); err != nil {
		fatalf("check: %v", err)
	}

	comps := b.Components()
	nskel, nmark := 0, 0
	for _, v := range b.Thin.V {
		switch v {
		case 1:
			nskel++
		case 2:
			nmark++
		}
	}
	fmt.Printf(" %s\n", args[0])
	fmt.Printf("  raster:       %d x %d\n", b.Comp.Nrow, b.Comp.Ncol)
	fmt.Printf("  components:   %d (main %d)\n", len(comps), b.Main)
	fmt.Printf("  skeleton:     %d cells (%d reference markers)\n", nskel, nmark)
	fmt.Printf("  upper-left:   %.6f, %.6f at %.6g x %.6g", b.GD.Xmin, b.GD.Ymax, b.GD.Xres, b.GD.Yres)
	if b.GD.UTMZone > 0 {
		hemi := "S"
		if b.GD.Northern {
			hemi = "N"
		}
		fmt.Printf(" (UTM %d%s)", b.GD.UTMZone, hemi)
	}
	fmt.Println()
}
