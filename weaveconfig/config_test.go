package weaveconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave/report"
	"weave/weaveconfig"
)

const sampleManifest = `
[weave]
skip-constructor-mark = "chai.mixin.Skip"
custom-attribute-filter = ["chai.mixin.MixinAttribute"]

[weave.source]
module = "./fixtures/mixin.src.json"
root-type = "Acme.Mixins.LoggingMixin"

[weave.target]
module = "./fixtures/mixin.dst.json"
root-type = "Acme.Widgets.Widget"
output = "./out/mixin.dst.woven.json"
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "weave.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesManifest(t *testing.T) {
	path := writeManifest(t, sampleManifest)

	m, err := weaveconfig.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "chai.mixin.Skip", m.SkipConstructorMark)
	assert.Equal(t, []string{"chai.mixin.MixinAttribute"}, m.CustomAttributeFilter)
	assert.Equal(t, "Acme.Mixins.LoggingMixin", m.Source.RootType)
	assert.Equal(t, "Acme.Widgets.Widget", m.Target.RootType)
	assert.Equal(t, "./out/mixin.dst.woven.json", m.Target.Output)
}

func TestLoadRejectsMissingRequiredField(t *testing.T) {
	path := writeManifest(t, `
[weave.source]
module = "./fixtures/mixin.src.json"
root-type = "Acme.Mixins.LoggingMixin"
`)

	_, err := weaveconfig.Load(path)
	require.Error(t, err)
}

func TestApplyOverridesOnlyTouchesSetFields(t *testing.T) {
	path := writeManifest(t, sampleManifest)
	m, err := weaveconfig.Load(path)
	require.NoError(t, err)

	m.Apply(weaveconfig.Overrides{
		TargetType: "Acme.Widgets.OtherWidget",
	})

	assert.Equal(t, "Acme.Widgets.OtherWidget", m.Target.RootType)
	assert.Equal(t, "Acme.Mixins.LoggingMixin", m.Source.RootType)
	assert.Equal(t, "./out/mixin.dst.woven.json", m.Target.Output)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, report.LogLevelSilent, weaveconfig.ParseLogLevel("silent"))
	assert.Equal(t, report.LogLevelVerbose, weaveconfig.ParseLogLevel("verbose"))
	assert.Equal(t, report.LogLevelWarn, weaveconfig.ParseLogLevel("nonsense"))
}
