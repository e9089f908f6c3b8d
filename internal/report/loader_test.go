package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDefinition = `
reports:
  - name: Asset-Inventory
    family: Assets
    heading: Asset Inventory
    description: Assets known to the catalog.
    aliases: [Assets]
    formats:
      - types: [DICT, LIST]
        columns:
          - key: display_name
            label: Asset
          - key: type_name
            label: Type
        action:
          function: CollectionManager.find_collections
          requiredParams: [search_string]
          optionalParams: [page_size]
          specParams:
            classification_names: [Asset]
`

func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets.yaml"), []byte(validDefinition), 0o644))

	specs, err := LoadDefinitions(dir)
	require.NoError(t, err)
	require.Len(t, specs, 1)

	spec := specs[0]
	assert.Equal(t, "Asset-Inventory", spec.Name)
	assert.Equal(t, []string{"Assets"}, spec.Aliases)
	require.Len(t, spec.Formats, 1)
	assert.Equal(t, []Kind{KindDict, KindList}, spec.Formats[0].Types)
	assert.Equal(t, "CollectionManager.find_collections", spec.Formats[0].Action.Function)
	assert.Equal(t, []interface{}{"Asset"}, spec.Formats[0].Action.SpecParams["classification_names"].([]interface{}))
}

func TestLoadDefinitionsMissingDir(t *testing.T) {
	specs, err := LoadDefinitions(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestLoadDefinitionsRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("reports: {not: a list}"), 0o644))

	_, err := LoadDefinitions(dir)
	assert.Error(t, err)
}

func TestLoadDefinitionsIgnoresNonYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not yaml"), 0o644))

	specs, err := LoadDefinitions(dir)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestBuildRegistryMergesBuiltinsAndDefinitions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets.yaml"), []byte(validDefinition), 0o644))

	registry, err := BuildRegistry(dir)
	require.NoError(t, err)

	_, ok := registry.Get("Glossary-Terms")
	assert.True(t, ok, "built-in report missing")
	_, ok = registry.Get("Asset-Inventory")
	assert.True(t, ok, "file-defined report missing")
}

func TestBuildRegistryRejectsDefinitionCollidingWithBuiltin(t *testing.T) {
	dir := t.TempDir()
	collision := `
reports:
  - name: Glossary-Terms
    formats:
      - types: [DICT]
        action:
          function: GlossaryManager.find_glossary_terms
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "collide.yaml"), []byte(collision), 0o644))

	_, err := BuildRegistry(dir)
	assert.Error(t, err)
}

func TestStoreReloadKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	before := store.Registry()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":::"), 0o644))
	assert.Error(t, store.Reload())
	assert.Same(t, before, store.Registry())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(validDefinition), 0o644))
	require.NoError(t, store.Reload())
	_, ok := store.Registry().Get("Asset-Inventory")
	assert.True(t, ok)
}
