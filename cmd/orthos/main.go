package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Orthos/internal/config"
	"Orthos/internal/version"
)

var materialsFile string

func loadMaterials() (config.Materials, error) {
	return config.LoadMaterials(materialsFile)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "orthos",
		Short:         "composite laminate plate calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&materialsFile, "materials", os.Getenv("ORTHOS_MATERIALS"), "material presets file (yaml)")

	rootCmd.AddCommand(
		newBendingCmd(),
		newBucklingCmd(),
		newLaminateCmd(),
		newSizingCmd(),
		newImportCmd(),
		newMicromechCmd(),
		newHoleCmd(),
		newFatigueCmd(),
		newMaterialsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "print version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "orthos", version.String())
			},
		},
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
