package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "combfino",
	Short: "Pairwise similarity detection for C source submissions",
	Long: `combfino compares C source files submitted for the same assignment
question and flags pairs whose structural similarity stands out against
the rest of that question's submissions.

Files are expected to follow the qN_SIGLA.c naming convention (question
number, then author tag); everything else in a directory is ignored.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
}
