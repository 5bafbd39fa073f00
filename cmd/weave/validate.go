package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weave/ilmodel/fixtureio"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a manifest's fixture modules and root types resolve, without weaving",
	RunE:  validateManifest,
}

func validateManifest(cmd *cobra.Command, args []string) error {
	manifest, _, err := loadManifest(cmd)
	if err != nil {
		return err
	}

	codec := fixtureio.New()

	sourceModule, err := codec.ReadModule(manifest.Source.Module)
	if err != nil {
		return err
	}
	if _, ok := sourceModule.LookupType(manifest.Source.RootType); !ok {
		return fmt.Errorf("validate: source type %q not found in %s", manifest.Source.RootType, manifest.Source.Module)
	}

	targetModule, err := codec.ReadModule(manifest.Target.Module)
	if err != nil {
		return err
	}
	if _, ok := targetModule.LookupType(manifest.Target.RootType); !ok {
		return fmt.Errorf("validate: target type %q not found in %s", manifest.Target.RootType, manifest.Target.Module)
	}

	fmt.Println("manifest OK")
	return nil
}
