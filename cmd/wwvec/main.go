package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wwvec",
	Short: "Vectorize drainage-basin waterway rasters",
	Long: "wwvec converts raster descriptions of drainage basins into " +
		"topologically valid vector stream networks: it stitches " +
		"disconnected waterway components onto the main network and " +
		"traces the thinned waterway mask into lines spliced onto the " +
		"reference waterways.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
