package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/bnbgo/internal/model"
	"github.com/specialistvlad/bnbgo/internal/parser"
)

func parse(t *testing.T, name, src string) *parser.File {
	t.Helper()
	f, diags := parser.Parse(name, []byte(src))
	require.Empty(t, diags)
	return f
}

func TestBuild_Place(t *testing.T) {
	// --- Arrange ---
	f := parse(t, "a.bnb", `
/// Sign up here.
place Registration
  include Header
  Username
  /// Submits the form.
  Sign Up -> (success) Home
          -> (failure) Support
  - Terms -> Legal
  position 10, ^ Home - 12
  sketch reg.png
    [50,20 110,40] Sign Up
`)

	// --- Act ---
	bb := Build(f)

	// --- Assert ---
	require.Len(t, bb.Places, 1)
	p := bb.Places[0]
	assert.Equal(t, "place:Registration", p.ID)
	assert.Equal(t, "Sign up here.", p.Description)
	assert.Equal(t, 3, p.Source.Line)
	assert.Equal(t, []model.Include{{Name: "Header", At: 0, Source: p.Includes[0].Source}}, p.Includes)
	assert.Nil(t, p.Point)

	forest := p.Affordances
	require.Equal(t, 3, forest.Len())
	assert.Equal(t, []int{0, 1}, forest.Roots)

	signUp := forest.Node(1)
	assert.Equal(t, "Sign Up", signUp.Label)
	assert.Equal(t, "Submits the form.", signUp.Description)
	assert.Equal(t, "place:Registration/1", signUp.ID)
	assert.Equal(t, []int{2}, signUp.Children)
	require.Len(t, signUp.Connections, 2)
	assert.Equal(t, "place:Registration/1->0", signUp.Connections[0].ID)
	assert.Equal(t, "success", signUp.Connections[0].Label)
	assert.Equal(t, "Home", signUp.Connections[0].Target)
	assert.Empty(t, signUp.Connections[0].TargetID)

	terms := forest.Node(2)
	assert.Equal(t, 1, terms.Parent)
	assert.Equal(t, "Legal", terms.Connections[0].Target)

	require.NotNil(t, p.Position)
	assert.Equal(t, model.Absolute(10), p.Position.X)
	assert.Equal(t, model.Relative("Home", model.PivotTop, -12), p.Position.Y)

	require.NotNil(t, p.Sketch)
	assert.Equal(t, "reg.png", p.Sketch.Path)
	require.Len(t, p.Sketch.Regions, 1)
	assert.Equal(t, "Sign Up", p.Sketch.Regions[0].Affordance)
	assert.Empty(t, p.Sketch.Regions[0].AffordanceID)
}

func TestBuild_ComponentAndMerge(t *testing.T) {
	a := parse(t, "a.bnb", "place Home\n  Dashboard\ncomponent Header\n  Logo\n  - Mark\n")
	b := parse(t, "b.bnb", "component Footer\n  Legal\nplace Support\n  Chat\n")

	bb := Build(a, nil, b)

	require.Len(t, bb.Places, 2)
	assert.Equal(t, "Home", bb.Places[0].Name)
	assert.Equal(t, "Support", bb.Places[1].Name)
	assert.Equal(t, "b.bnb", bb.Places[1].Source.Filename)

	require.Len(t, bb.Components, 2)
	header := bb.Components[0]
	assert.Equal(t, "component:Header", header.ID)
	assert.Equal(t, "component:Header/1", header.Affordances.Node(1).ID)
	assert.Equal(t, 0, header.Affordances.Node(1).Parent)
	assert.Equal(t, "Footer", bb.Components[1].Name)
}

func TestBuild_KeepsDuplicatesForResolution(t *testing.T) {
	f := parse(t, "a.bnb", "place Home\nplace Home\ncomponent Home\n")
	bb := Build(f)
	assert.Len(t, bb.Places, 2)
	assert.Len(t, bb.Components, 1)
}

func TestBuild_Empty(t *testing.T) {
	bb := Build()
	require.NotNil(t, bb)
	assert.Empty(t, bb.Places)
	assert.Empty(t, bb.Components)
}
