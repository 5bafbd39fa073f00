// Command weave is a thin CLI shell around the weaving engine: it loads a
// manifest, applies flag overrides, reads fixture modules, drives the
// weaver, writes the result, and optionally dumps the target's new shape.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "weave",
	Short: "Managed-assembly mixin weaver",
	Long:  `weave clones a mixin type's members into a pre-existing host type in another module.`,
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)

	rootCmd.PersistentFlags().String("config", "weave.toml", "path to the weave manifest")
	rootCmd.PersistentFlags().String("source-module", "", "override weave.source.module")
	rootCmd.PersistentFlags().String("source-type", "", "override weave.source.root-type")
	rootCmd.PersistentFlags().String("target-module", "", "override weave.target.module")
	rootCmd.PersistentFlags().String("target-type", "", "override weave.target.root-type")
	rootCmd.PersistentFlags().String("out", "", "override weave.target.output")
	rootCmd.PersistentFlags().String("skip-mark", "", "override weave.skip-constructor-mark")
	rootCmd.PersistentFlags().StringArray("filter-attr", nil, "override weave.custom-attribute-filter (repeatable)")
	rootCmd.PersistentFlags().String("log-level", "warn", "silent|error|warn|verbose")
	rootCmd.PersistentFlags().Bool("json-log", false, "also emit structured JSON log events")
	rootCmd.PersistentFlags().Bool("dump-ir", false, "print an LLVM-flavored shape dump of the woven target")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
