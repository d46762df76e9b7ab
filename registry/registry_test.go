package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/glbind/errors"
)

func loadMiniGL(t *testing.T) *Document {
	t.Helper()
	doc, err := Load(filepath.Join("testdata", "minigl.yaml"))
	require.NoError(t, err)
	return doc
}

func enumNames(reg *Registry) []string {
	names := make([]string, 0, len(reg.Enums))
	for _, e := range reg.Enums {
		names = append(names, e.Ident)
	}
	return names
}

func cmdNames(reg *Registry) []string {
	names := make([]string, 0, len(reg.Cmds))
	for _, c := range reg.Cmds {
		names = append(names, c.Ident)
	}
	return names
}

func TestLoadYAML(t *testing.T) {
	doc := loadMiniGL(t)

	assert.Len(t, doc.Enums, 12)
	assert.Len(t, doc.Commands, 8)
	assert.Len(t, doc.Groups, 4)
	assert.Len(t, doc.Features, 3)
	assert.Len(t, doc.Extensions, 2)

	assert.Equal(t, "GLboolean", doc.Enums[2].Type)
	assert.Equal(t, FlavorBitmask, doc.Groups[3].Flavor)
	assert.Equal(t, "ActiveTexture", doc.Commands[6].Alias)
	assert.Equal(t, Param{Ident: "enabled", Type: "GLboolean", Group: "Boolean"}, doc.Commands[7].Params[5])
}

func TestLoadTOMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	tomlDoc := `
[[enums]]
name = "ZERO"
value = "0"

[[commands]]
name = "Flush"

[[groups]]
name = "Zeroes"
enums = ["ZERO", "ZERO"]
type = "plain"

[aliases]
Flush = ["FlushAPPLE"]
`
	jsonDoc := `{
  "enums": [{"name": "ZERO", "value": "0"}],
  "commands": [{"name": "Flush"}],
  "groups": [{"name": "Zeroes", "enums": ["ZERO", "ZERO"], "type": "plain"}],
  "aliases": {"Flush": ["FlushAPPLE"]}
}`

	for name, content := range map[string]string{"reg.toml": tomlDoc, "reg.json": jsonDoc} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			doc, err := Load(path)
			require.NoError(t, err)
			require.Len(t, doc.Enums, 1)
			assert.Equal(t, Enum{Ident: "ZERO", Value: "0"}, doc.Enums[0])
			require.Len(t, doc.Groups, 1)
			assert.Equal(t, []string{"ZERO", "ZERO"}, doc.Groups[0].Enums)
			assert.Equal(t, FlavorPlain, doc.Groups[0].Flavor)
			assert.Equal(t, []string{"FlushAPPLE"}, doc.Aliases["Flush"])
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "reg.xml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidRegistry))
		assert.NotEmpty(t, errors.GetAllHints(err))
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		path := filepath.Join(dir, "typo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("enumz: []\n"), 0644))
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidRegistry))
	})

	t.Run("unknown toml key", func(t *testing.T) {
		_, err := Decode([]byte("comands = []\n"), FormatTOML)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidRegistry))
	})
}

func TestSelectVersionAndProfile(t *testing.T) {
	doc := loadMiniGL(t)

	tests := []struct {
		name      string
		id        Identity
		wantCmds  []string
		wantEnums []string
	}{
		{
			name:      "gl 1.0",
			id:        Identity{API: APIGl, Version: "1.0"},
			wantCmds:  []string{"Enable", "BlendFunc", "Clear", "IsEnabled", "AlphaFunc"},
			wantEnums: []string{"ZERO", "ONE", "FALSE", "TRUE", "SRC_ALPHA", "DEPTH_TEST", "BLEND", "COLOR_BUFFER_BIT", "DEPTH_BUFFER_BIT", "ALPHA_TEST"},
		},
		{
			name:      "gl 3.3 compatibility keeps removed items",
			id:        Identity{API: APIGl, Version: "3.3", Profile: ProfileCompatibility},
			wantCmds:  []string{"Enable", "BlendFunc", "Clear", "IsEnabled", "AlphaFunc", "ActiveTexture"},
			wantEnums: []string{"ZERO", "ONE", "FALSE", "TRUE", "SRC_ALPHA", "DEPTH_TEST", "BLEND", "COLOR_BUFFER_BIT", "DEPTH_BUFFER_BIT", "ALPHA_TEST", "TEXTURE0"},
		},
		{
			name:      "glcore 4.5 core drops removed items",
			id:        Identity{API: APIGlCore, Version: "4.5", Profile: ProfileCore},
			wantCmds:  []string{"Enable", "BlendFunc", "Clear", "IsEnabled", "ActiveTexture"},
			wantEnums: []string{"ZERO", "ONE", "FALSE", "TRUE", "SRC_ALPHA", "DEPTH_TEST", "BLEND", "COLOR_BUFFER_BIT", "DEPTH_BUFFER_BIT", "TEXTURE0"},
		},
		{
			name: "other api selects nothing",
			id:   Identity{API: APIEgl, Version: "1.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := Select(doc, tt.id, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCmds, nilIfEmpty(cmdNames(reg)))
			assert.Equal(t, tt.wantEnums, nilIfEmpty(enumNames(reg)))
			assert.Len(t, reg.Groups, 4, "groups are kept whole")
			assert.Equal(t, tt.id, reg.Identity)
		})
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestSelectExtensions(t *testing.T) {
	doc := loadMiniGL(t)

	reg, err := Select(doc, Identity{API: APIGl, Version: "4.5", Profile: ProfileCore}, []string{"GL_KHR_debug"})
	require.NoError(t, err)
	assert.Contains(t, cmdNames(reg), "DebugMessageControl")
	assert.Contains(t, enumNames(reg), "DEBUG_OUTPUT")

	_, err = Select(doc, Identity{API: APIGl}, []string{"GL_NV_nothing"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = Select(doc, Identity{API: APIGles1}, []string{"GL_ARB_multitexture"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRegistry))
}

func TestSelectAliases(t *testing.T) {
	doc := loadMiniGL(t)

	t.Run("fallbacks all", func(t *testing.T) {
		reg, err := Select(doc, Identity{API: APIGl, Version: "4.5", Fallbacks: FallbacksAll}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ActiveTextureARB"}, reg.FallbacksFor("ActiveTexture"))
		// ActiveTextureARB is not selected, so it gets no entry of its own.
		_, ok := reg.Aliases["ActiveTextureARB"]
		assert.False(t, ok)
		assert.Nil(t, reg.FallbacksFor("Enable"))
	})

	t.Run("both directions when both are selected", func(t *testing.T) {
		reg, err := Select(doc, Identity{API: APIGl, Version: "4.5"}, []string{"GL_ARB_multitexture"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ActiveTextureARB"}, reg.FallbacksFor("ActiveTexture"))
		assert.Equal(t, []string{"ActiveTexture"}, reg.FallbacksFor("ActiveTextureARB"))
	})

	t.Run("fallbacks none", func(t *testing.T) {
		reg, err := Select(doc, Identity{API: APIGl, Version: "4.5", Fallbacks: FallbacksNone}, nil)
		require.NoError(t, err)
		assert.Empty(t, reg.Aliases)
		assert.Nil(t, reg.FallbacksFor("ActiveTexture"))
	})

	t.Run("explicit aliases come first", func(t *testing.T) {
		doc := &Document{
			Commands: []Command{{Ident: "Flush"}, {Ident: "FlushEXT", Alias: "Flush"}},
			Aliases:  map[string][]string{"Flush": {"FlushAPPLE", "FlushEXT"}},
		}
		reg, err := Select(doc, Identity{API: APIGl}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"FlushAPPLE", "FlushEXT"}, reg.FallbacksFor("Flush"))
		assert.Equal(t, []string{"Flush"}, reg.FallbacksFor("FlushEXT"))
	})
}

func TestSelectWithoutFeaturesKeepsEverything(t *testing.T) {
	doc := &Document{
		Enums:    []Enum{{Ident: "A", Value: "1"}, {Ident: "B", Value: "2"}},
		Commands: []Command{{Ident: "Go"}},
		Groups: []Group{
			{Ident: "G", Enums: []string{"A"}},
			{Ident: "G", Enums: []string{"B"}},
		},
	}
	reg, err := Select(doc, Identity{API: "vk"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, enumNames(reg))
	assert.Equal(t, []string{"Go"}, cmdNames(reg))
	assert.Equal(t, []string{"A"}, reg.Groups["G"].Enums, "first group declaration wins")
}

func TestSelectBadVersion(t *testing.T) {
	_, err := Select(&Document{}, Identity{API: APIGl, Version: "four"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRegistry))

	_, err = Select(nil, Identity{API: APIGl}, nil)
	require.Error(t, err)
}

func TestRegistryHelpers(t *testing.T) {
	reg := &Registry{
		Identity: Identity{API: APIGl, Version: "4.5", Profile: ProfileCore},
		Enums:    []Enum{{Ident: "ZERO", Value: "0"}},
		Groups:   map[string]Group{"b": {Ident: "b"}, "a": {Ident: "a"}, "C": {Ident: "C"}},
	}

	assert.Equal(t, []string{"C", "a", "b"}, reg.GroupNames())
	assert.Equal(t, "gl 4.5 core", reg.Identity.String())
	assert.Equal(t, "0", reg.EnumSet()["ZERO"].Value)

	_, ok := reg.Group("a")
	assert.True(t, ok)
	assert.Nil(t, reg.FallbacksFor("Anything"))

	assert.True(t, Command{Return: "GLenum"}.HasReturn())
	assert.False(t, Command{Return: " void "}.HasReturn())
	assert.False(t, Command{}.HasReturn())
	assert.True(t, APIEgl.IsKnown())
	assert.False(t, API("vk").IsKnown())
}
