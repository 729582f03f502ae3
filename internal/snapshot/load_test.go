package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotsgen/iotsgen/internal/scope"
	"github.com/iotsgen/iotsgen/internal/typedesc"
)

const sampleJSON = `{
  "formatVersion": "1.0.0",
  "files": [
    {
      "name": "types.ts",
      "imports": ["shared.ts"],
      "declarations": [
        {
          "name": "UserId",
          "kind": "alias",
          "type": {"kind": "string"}
        },
        {
          "name": "User",
          "kind": "interface",
          "refs": ["UserId"],
          "type": {
            "kind": "object",
            "properties": [
              {"name": "id", "type": {"kind": "ref", "name": "UserId"}, "declared": {"ref": "UserId"}},
              {"name": "tag", "optional": true, "type": {"kind": "union", "members": [
                {"kind": "stringLiteral", "str": "a"},
                {"kind": "stringLiteral", "str": "b"}
              ]}}
            ]
          }
        }
      ],
      "namespaces": [
        {
          "name": "api",
          "declarations": [
            {"name": "Version", "kind": "const", "type": {"kind": "numberLiteral", "num": 2}}
          ]
        }
      ]
    }
  ]
}`

func TestReadJSON(t *testing.T) {
	snap, err := Read(strings.NewReader(sampleJSON), FormatJSON)
	require.NoError(t, err)

	require.Len(t, snap.Files, 1)
	f := snap.Files[0]
	assert.Equal(t, "types.ts", f.Name)
	assert.Equal(t, []string{"shared.ts"}, f.Imports)
	require.Len(t, f.Decls, 2)

	userID := f.Decls[0]
	assert.Equal(t, "UserId", userID.Name)
	assert.Equal(t, scope.DeclAlias, userID.Kind)
	assert.NotZero(t, userID.Type.Flags&typedesc.FlagString)

	user := f.Decls[1]
	assert.Equal(t, scope.DeclInterface, user.Kind)
	assert.Equal(t, []string{"UserId"}, user.Refs)
	require.Len(t, user.Type.Properties, 2)
	assert.Equal(t, "UserId", user.Type.Properties[0].Type.Symbol)
	require.NotNil(t, user.Type.Properties[0].Declared)
	assert.Equal(t, "UserId", user.Type.Properties[0].Declared.Ref)
	assert.True(t, user.Type.Properties[1].Optional)

	require.Len(t, f.Namespaces, 1)
	require.Len(t, f.Namespaces[0].Decls, 1)
	version := f.Namespaces[0].Decls[0]
	assert.Equal(t, scope.DeclConst, version.Kind)
	require.NotNil(t, version.Type.Literal)
	assert.Equal(t, float64(2), version.Type.Literal.Num)
}

func TestDecodeRejectsUnknownMembers(t *testing.T) {
	doc := `{"formatVersion": "1.0.0", "files": [], "surprise": true}`
	_, err := Decode(strings.NewReader(doc), FormatJSON)
	require.Error(t, err)
}

func TestReadYAML(t *testing.T) {
	doc := `
formatVersion: "1.2.0"
files:
  - name: types.ts
    declarations:
      - name: Flag
        kind: alias
        type:
          kind: boolean
`
	snap, err := Read(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	require.Len(t, snap.Files, 1)
	require.Len(t, snap.Files[0].Decls, 1)
	assert.NotZero(t, snap.Files[0].Decls[0].Type.Flags&typedesc.FlagBoolean)
}

func TestDecodeYAMLRejectsUnknownFields(t *testing.T) {
	doc := "formatVersion: \"1.0.0\"\nfiles: []\nsurprise: true\n"
	_, err := Decode(strings.NewReader(doc), FormatYAML)
	require.Error(t, err)
}

func TestCheckVersion(t *testing.T) {
	cases := []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"1.7.3", true},
		{"1.0", true},
		{"2.0.0", false},
		{"0.9.1", false},
		{"", false},
		{"one", false},
	}
	for _, tc := range cases {
		t.Run(tc.version, func(t *testing.T) {
			err := CheckVersion(&Document{FormatVersion: tc.version})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConvertNodeKinds(t *testing.T) {
	cases := []struct {
		name  string
		node  *Node
		check func(t *testing.T, tt *typedesc.Type)
	}{
		{
			"unknownObject",
			&Node{Kind: "unknownObject"},
			func(t *testing.T, tt *typedesc.Type) {
				assert.NotZero(t, tt.Flags&typedesc.FlagNonPrimitive)
			},
		},
		{
			"tuple keeps empty element list",
			&Node{Kind: "tuple"},
			func(t *testing.T, tt *typedesc.Type) {
				require.NotNil(t, tt.Elements)
				assert.Empty(t, tt.Elements)
			},
		},
		{
			"tuple rest",
			&Node{Kind: "tuple", Elements: []*Node{{Kind: "string"}}, Rest: true},
			func(t *testing.T, tt *typedesc.Type) {
				assert.True(t, tt.Rest)
				require.Len(t, tt.Elements, 1)
			},
		},
		{
			"array",
			&Node{Kind: "array", Element: &Node{Kind: "number"}},
			func(t *testing.T, tt *typedesc.Type) {
				require.NotNil(t, tt.Element)
				assert.NotZero(t, tt.Element.Flags&typedesc.FlagNumber)
			},
		},
		{
			"record becomes the two-argument alias form",
			&Node{Kind: "record", Key: &Node{Kind: "string"}, Value: &Node{Kind: "number"}},
			func(t *testing.T, tt *typedesc.Type) {
				assert.Equal(t, "Record", tt.Alias)
				require.Len(t, tt.AliasArgs, 2)
			},
		},
		{
			"function",
			&Node{Kind: "function"},
			func(t *testing.T, tt *typedesc.Type) {
				assert.True(t, tt.Callable)
			},
		},
		{
			"intersection",
			&Node{Kind: "intersection", Members: []*Node{{Kind: "object"}, {Kind: "object"}}},
			func(t *testing.T, tt *typedesc.Type) {
				assert.NotZero(t, tt.Flags&typedesc.FlagIntersection)
				assert.Len(t, tt.Members, 2)
			},
		},
		{
			"alias rides along",
			&Node{Kind: "string", Alias: "Brand"},
			func(t *testing.T, tt *typedesc.Type) {
				assert.Equal(t, "Brand", tt.Alias)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tt, err := convertNode(tc.node)
			require.NoError(t, err)
			tc.check(t, tt)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  *Document
	}{
		{
			"unknown node kind",
			docWith(&Declaration{Name: "X", Kind: "alias", Type: &Node{Kind: "bigint"}}),
		},
		{
			"unknown declaration kind",
			docWith(&Declaration{Name: "X", Kind: "enum", Type: &Node{Kind: "string"}}),
		},
		{
			"missing type node",
			docWith(&Declaration{Name: "X", Kind: "alias"}),
		},
		{
			"ref without a name",
			docWith(&Declaration{Name: "X", Kind: "alias", Type: &Node{Kind: "ref"}}),
		},
		{
			"bad annotation primitive",
			docWith(&Declaration{Name: "X", Kind: "interface", Type: &Node{
				Kind: "object",
				Properties: []*Property{{
					Name:     "p",
					Type:     &Node{Kind: "string"},
					Declared: &Declared{Union: []DeclaredTerm{{Prim: "bigint"}}},
				}},
			}}),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.doc.Convert()
			require.Error(t, err)
		})
	}
}

func docWith(decls ...*Declaration) *Document {
	return &Document{
		FormatVersion: FormatVersion,
		Files:         []*File{{Name: "types.ts", Declarations: decls}},
	}
}

func TestConvertNormalizesIdentifiers(t *testing.T) {
	decomposed := "Café"
	composed := "Café"

	doc := docWith(
		&Declaration{Name: decomposed, Kind: "alias", Type: &Node{Kind: "string"}},
		&Declaration{
			Name: "Menu",
			Kind: "interface",
			Refs: []string{decomposed},
			Type: &Node{Kind: "object", Properties: []*Property{{
				Name:     "place",
				Type:     &Node{Kind: "ref", Name: decomposed},
				Declared: &Declared{Ref: decomposed},
			}}},
		},
	)
	snap, err := doc.Convert()
	require.NoError(t, err)

	decls := snap.Files[0].Decls
	assert.Equal(t, composed, decls[0].Name)
	assert.Equal(t, []string{composed}, decls[1].Refs)
	assert.Equal(t, composed, decls[1].Type.Properties[0].Type.Symbol)
	assert.Equal(t, composed, decls[1].Type.Properties[0].Declared.Ref)
}

func TestLoadPicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "snap.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o644))
	snap, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Len(t, snap.Files, 1)

	yamlPath := filepath.Join(dir, "snap.yaml")
	yamlDoc := "formatVersion: \"1.0.0\"\nfiles:\n  - name: a.ts\n"
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0o644))
	snap, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "a.ts", snap.Files[0].Name)
}

func TestLoadRejectsIncompatibleVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	doc := `{"formatVersion": "2.0.0", "files": []}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatVersion")
}

func TestValidate(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, Validate([]byte(sampleJSON), FormatJSON))
	})

	t.Run("missing kind", func(t *testing.T) {
		doc := `{"formatVersion": "1.0.0", "files": [{"name": "a.ts", "declarations": [{"name": "X", "type": {"kind": "string"}}]}]}`
		assert.Error(t, Validate([]byte(doc), FormatJSON))
	})

	t.Run("unknown node kind", func(t *testing.T) {
		doc := `{"formatVersion": "1.0.0", "files": [{"name": "a.ts", "declarations": [{"name": "X", "kind": "alias", "type": {"kind": "bigint"}}]}]}`
		assert.Error(t, Validate([]byte(doc), FormatJSON))
	})

	t.Run("yaml instance", func(t *testing.T) {
		doc := "formatVersion: \"1.0.0\"\nfiles:\n  - name: a.ts\n"
		assert.NoError(t, Validate([]byte(doc), FormatYAML))
	})

	t.Run("malformed json", func(t *testing.T) {
		assert.Error(t, Validate([]byte("{"), FormatJSON))
	})
}
