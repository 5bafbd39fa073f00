package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weave/ilmodel/fixtureio"
	"weave/irdump"
	"weave/report"
	"weave/weaveconfig"
	"weave/weaver"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a weave and write the resulting target module",
	RunE:  runWeave,
}

func loadOverrides(cmd *cobra.Command) (weaveconfig.Overrides, error) {
	var o weaveconfig.Overrides
	var err error

	if o.SourceModule, err = cmd.Flags().GetString("source-module"); err != nil {
		return o, err
	}
	if o.SourceType, err = cmd.Flags().GetString("source-type"); err != nil {
		return o, err
	}
	if o.TargetModule, err = cmd.Flags().GetString("target-module"); err != nil {
		return o, err
	}
	if o.TargetType, err = cmd.Flags().GetString("target-type"); err != nil {
		return o, err
	}
	if o.Out, err = cmd.Flags().GetString("out"); err != nil {
		return o, err
	}
	if o.SkipMark, err = cmd.Flags().GetString("skip-mark"); err != nil {
		return o, err
	}
	if o.FilterAttrs, err = cmd.Flags().GetStringArray("filter-attr"); err != nil {
		return o, err
	}
	if o.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
		return o, err
	}
	if o.JSONLog, err = cmd.Flags().GetBool("json-log"); err != nil {
		return o, err
	}

	return o, nil
}

func loadManifest(cmd *cobra.Command) (*weaveconfig.Manifest, weaveconfig.Overrides, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, weaveconfig.Overrides{}, err
	}

	manifest, err := weaveconfig.Load(configPath)
	if err != nil {
		return nil, weaveconfig.Overrides{}, err
	}

	overrides, err := loadOverrides(cmd)
	if err != nil {
		return nil, weaveconfig.Overrides{}, err
	}
	manifest.Apply(overrides)

	if err := manifest.Validate(); err != nil {
		return nil, weaveconfig.Overrides{}, err
	}

	return manifest, overrides, nil
}

func runWeave(cmd *cobra.Command, args []string) error {
	manifest, overrides, err := loadManifest(cmd)
	if err != nil {
		return err
	}

	reporter, err := report.New(weaveconfig.ParseLogLevel(overrides.LogLevel), overrides.JSONLog)
	if err != nil {
		return fmt.Errorf("weave: initializing reporter: %w", err)
	}
	defer reporter.Sync()

	codec := fixtureio.New()

	sourceModule, err := codec.ReadModule(manifest.Source.Module)
	if err != nil {
		return err
	}
	targetModule, err := codec.ReadModule(manifest.Target.Module)
	if err != nil {
		return err
	}

	result, err := weaver.Weave(weaver.Options{
		SourceModule:  sourceModule,
		TargetModule:  targetModule,
		SourceTypeFQN: manifest.Source.RootType,
		TargetTypeFQN: manifest.Target.RootType,
		SkipMark:      manifest.SkipConstructorMark,
		FilterAttrs:   manifest.CustomAttributeFilter,
	}, reporter)
	if err != nil {
		return err
	}

	if err := codec.WriteModule(manifest.Target.Output, targetModule); err != nil {
		return err
	}

	if dumpIR, err := cmd.Flags().GetBool("dump-ir"); err == nil && dumpIR {
		fmt.Println(irdump.Dump(result.TargetRoot))
	}

	reporter.Info("wrote %s (%d vertices cloned)", manifest.Target.Output, result.VertexCount)
	return nil
}
