// Package weaveconfig loads the options a weave run needs from a TOML
// manifest, then lets CLI flags override individual fields.
package weaveconfig

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"weave/report"
)

// Manifest is the parsed weave.toml contents.
type Manifest struct {
	SkipConstructorMark   string   `toml:"skip-constructor-mark"`
	CustomAttributeFilter []string `toml:"custom-attribute-filter"`

	Source EndpointConfig `toml:"source"`
	Target TargetConfig   `toml:"target"`
}

// EndpointConfig names the fixture module and root type a weave reads
// from.
type EndpointConfig struct {
	Module   string `toml:"module"`
	RootType string `toml:"root-type"`
}

// TargetConfig is an EndpointConfig plus the path the woven module is
// written back out to.
type TargetConfig struct {
	EndpointConfig
	Output string `toml:"output"`
}

// tomlFile mirrors the [weave] / [weave.source] / [weave.target] table
// nesting of the manifest format.
type tomlFile struct {
	Weave struct {
		SkipConstructorMark   string   `toml:"skip-constructor-mark"`
		CustomAttributeFilter []string `toml:"custom-attribute-filter"`
		Source                struct {
			Module   string `toml:"module"`
			RootType string `toml:"root-type"`
		} `toml:"source"`
		Target struct {
			Module   string `toml:"module"`
			RootType string `toml:"root-type"`
			Output   string `toml:"output"`
		} `toml:"target"`
	} `toml:"weave"`
}

// Load reads and validates a weave.toml manifest at path.
func Load(path string) (*Manifest, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("weaveconfig: reading %s: %w", path, err)
	}

	var tf tomlFile
	if err := toml.Unmarshal(buf, &tf); err != nil {
		return nil, fmt.Errorf("weaveconfig: parsing %s: %w", path, err)
	}

	m := &Manifest{
		SkipConstructorMark:   tf.Weave.SkipConstructorMark,
		CustomAttributeFilter: tf.Weave.CustomAttributeFilter,
		Source: EndpointConfig{
			Module:   tf.Weave.Source.Module,
			RootType: tf.Weave.Source.RootType,
		},
		Target: TargetConfig{
			EndpointConfig: EndpointConfig{
				Module:   tf.Weave.Target.Module,
				RootType: tf.Weave.Target.RootType,
			},
			Output: tf.Weave.Target.Output,
		},
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks that every field a weave run needs is present.
func (m *Manifest) Validate() error {
	if m.Source.Module == "" {
		return fmt.Errorf("weaveconfig: missing weave.source.module")
	}
	if m.Source.RootType == "" {
		return fmt.Errorf("weaveconfig: missing weave.source.root-type")
	}
	if m.Target.Module == "" {
		return fmt.Errorf("weaveconfig: missing weave.target.module")
	}
	if m.Target.RootType == "" {
		return fmt.Errorf("weaveconfig: missing weave.target.root-type")
	}
	if m.Target.Output == "" {
		return fmt.Errorf("weaveconfig: missing weave.target.output")
	}
	return nil
}

// Overrides carries the CLI flag values that take precedence over
// whatever the manifest says. A zero-value field (empty string, nil
// slice, false) leaves the manifest's value untouched — flags only ever
// narrow or replace, never blank out, a manifest setting the user didn't
// touch.
type Overrides struct {
	SourceModule string
	SourceType   string
	TargetModule string
	TargetType   string
	Out          string
	SkipMark     string
	FilterAttrs  []string
	LogLevel     string
	JSONLog      bool
}

// Apply merges CLI overrides onto a loaded manifest, mutating it in
// place.
func (m *Manifest) Apply(o Overrides) {
	if o.SourceModule != "" {
		m.Source.Module = o.SourceModule
	}
	if o.SourceType != "" {
		m.Source.RootType = o.SourceType
	}
	if o.TargetModule != "" {
		m.Target.Module = o.TargetModule
	}
	if o.TargetType != "" {
		m.Target.RootType = o.TargetType
	}
	if o.Out != "" {
		m.Target.Output = o.Out
	}
	if o.SkipMark != "" {
		m.SkipConstructorMark = o.SkipMark
	}
	if len(o.FilterAttrs) > 0 {
		m.CustomAttributeFilter = o.FilterAttrs
	}
}

// ParseLogLevel maps the --log-level flag's string form to a
// report.LogLevel, defaulting to report.LogLevelWarn on an empty or
// unrecognized value.
func ParseLogLevel(s string) report.LogLevel {
	switch s {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "verbose":
		return report.LogLevelVerbose
	default:
		return report.LogLevelWarn
	}
}
