package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/model"
	"github.com/specialistvlad/bnbgo/internal/position"
	"github.com/specialistvlad/bnbgo/internal/resolve"
)

const registrationDoc = `
place Registration
  include Header

  Username
  Password
  Sign Up -> (success) Home
          -> (failure) Support

  sketch sketches/registration.png
    [50,20 110,40] Sign Up

place Support
  include Header

  Error Message
  Try Again -> Registration

  position > Registration
  sketch sketches/registration.png
    [50,20 110,40] Try Again

place Home
  include Header

  Dashboard

  position 0, ^ Registration - 12
  sketch sketches/home.png

component Header
  Logo
  Contact
`

func src(name, text string) Source {
	return Source{Name: name, Text: []byte(text)}
}

func findOne(t *testing.T, f model.Forest, label string) *model.Affordance {
	t.Helper()
	found := f.Find(func(l string) bool { return l == label })
	require.Len(t, found, 1, "affordances labeled %q", label)
	return f.Node(found[0])
}

func TestCompile_DocumentedExample(t *testing.T) {
	t.Parallel()

	// --- Act ---
	bb, err := Compile(context.Background(), src("registration.bnb", registrationDoc))

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, bb.Places, 3)
	require.Len(t, bb.Components, 1)

	for _, p := range bb.Places {
		assert.Equal(t, "Logo", p.Affordances.Node(p.Affordances.Roots[0]).Label, p.Name)
		assert.Equal(t, "Contact", p.Affordances.Node(p.Affordances.Roots[1]).Label, p.Name)
	}

	signUp := findOne(t, bb.Place("Registration").Affordances, "Sign Up")
	require.Len(t, signUp.Connections, 2)
	assert.Equal(t, "success", signUp.Connections[0].Label)
	assert.Equal(t, "place:Home", signUp.Connections[0].TargetID)
	assert.Equal(t, "failure", signUp.Connections[1].Label)
	assert.Equal(t, "place:Support", signUp.Connections[1].TargetID)

	assert.Equal(t, signUp.ID, bb.Place("Registration").Sketch.Regions[0].AffordanceID)

	// Registration is left to the layout, so everything relative to it is too.
	assert.Nil(t, bb.Place("Registration").Point)
	assert.Nil(t, bb.Place("Support").Point)
	assert.Nil(t, bb.Place("Home").Point)
}

func TestCompile_PositionRelativeToTopEdge(t *testing.T) {
	t.Parallel()

	c := New(Options{Sizes: position.Sizes(model.Size{Width: 200, Height: 100}, nil)})

	bb, err := c.Compile(context.Background(), src("a.bnb", `
place Registration
  position 10, ^ Home - 12
place Home
  position 300, 400
`))

	require.NoError(t, err)
	assert.Equal(t, &model.Point{X: 10, Y: 400 - 50 - 12}, bb.Place("Registration").Point)
}

func TestCompile_ReportsEverything(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	text := `
place Home
  Help -> Nowhere
  Broken -> (unterminated
  Plain
  include Missing
  sketch home.png
    [0,0 10,10] Plain
place Loop
  position > Loop
`

	// --- Act ---
	bb, err := Compile(context.Background(), src("a.bnb", text))

	// --- Assert ---
	require.Error(t, err)
	assert.Nil(t, bb)

	diags, ok := AsDiagnostics(err)
	require.True(t, ok)

	kinds := make([]diag.Kind, len(diags))
	for i, d := range diags {
		kinds[i] = d.Kind
	}
	// Sorted by position.
	assert.Equal(t, []diag.Kind{
		diag.UnknownPlace,
		diag.SyntaxError,
		diag.UnknownReference,
		diag.AffordanceWithoutConnection,
		diag.CyclicPosition,
	}, kinds)

	nowhere := diags.OfKind(diag.UnknownPlace)[0]
	assert.Equal(t, "Nowhere", nowhere.Subject)
	assert.Equal(t, 3, nowhere.Pos.Line)
	assert.Contains(t, err.Error(), `a.bnb:3:`)
}

func TestCompile_MergesDocumentsInOrder(t *testing.T) {
	t.Parallel()

	sources := []Source{
		src("a.bnb", "place A\n  Next -> B\n"),
		src("b.bnb", "place B\n  include Nav\n  Back -> A\n"),
		src("c.bnb", "component Nav\n  Home -> A\n"),
	}

	bb, err := Compile(context.Background(), sources...)

	require.NoError(t, err)
	require.Len(t, bb.Places, 2)
	assert.Equal(t, "A", bb.Places[0].Name)
	assert.Equal(t, "b.bnb", bb.Places[1].Source.Filename)
	assert.Equal(t, "place:A", findOne(t, bb.Place("B").Affordances, "Home").Connections[0].TargetID)
}

func TestCompile_DiagnosticsFromSeveralFiles(t *testing.T) {
	t.Parallel()

	_, err := Compile(context.Background(),
		src("b.bnb", "place B\n  Go -> Nowhere\n"),
		src("a.bnb", "stray line\n"),
	)

	diags, ok := AsDiagnostics(err)
	require.True(t, ok)
	require.Len(t, diags, 2)
	assert.Equal(t, "a.bnb", diags[0].Pos.Filename)
	assert.Equal(t, diag.SyntaxError, diags[0].Kind)
	assert.Equal(t, "b.bnb", diags[1].Pos.Filename)
}

func TestCompile_IncludePlacesOption(t *testing.T) {
	t.Parallel()

	text := "place Base\n  Help\nplace Home\n  include Base\n"

	_, err := Compile(context.Background(), src("a.bnb", text))
	require.Error(t, err)

	bb, err := New(Options{Resolve: resolve.Options{IncludePlaces: true}}).Compile(context.Background(), src("a.bnb", text))
	require.NoError(t, err)
	findOne(t, bb.Place("Home").Affordances, "Help")
}

func TestCompile_Idempotent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bb, err := Compile(context.Background(), src("registration.bnb", registrationDoc))
	require.NoError(t, err)
	once := bb.Clone()

	// --- Act ---
	diags := resolve.New(resolve.Options{}).Resolve(bb)
	diags = append(diags, position.New(nil).Resolve(bb, nil)...)

	// --- Assert ---
	require.Empty(t, diags)
	assert.Empty(t, cmp.Diff(once, bb, cmpopts.EquateEmpty()))
}

func TestCompile_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bb, err := Compile(ctx, src("a.bnb", "place A\n"))

	assert.Nil(t, bb)
	assert.ErrorIs(t, err, context.Canceled)
	_, ok := AsDiagnostics(err)
	assert.False(t, ok)
}

func TestRelayout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := New(Options{Sizes: position.Sizes(model.Size{Width: 100, Height: 100}, nil)})
	bb, err := c.Compile(context.Background(), src("registration.bnb", registrationDoc))
	require.NoError(t, err)

	// --- Act ---
	laid, err := c.Relayout(bb, map[string]model.Point{"Registration": {X: 500, Y: 500}})

	// --- Assert ---
	require.NoError(t, err)
	assert.Nil(t, bb.Place("Support").Point, "the original is not modified")
	assert.Equal(t, &model.Point{X: 500, Y: 500}, laid.Place("Registration").Point)
	assert.Equal(t, &model.Point{X: 550, Y: 500}, laid.Place("Support").Point)
	assert.Equal(t, &model.Point{X: 0, Y: 500 - 50 - 12}, laid.Place("Home").Point)
}

func TestReadSources(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bnb"), []byte("place B\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bnb"), []byte("place A\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes\n"), 0o600))

	// --- Act ---
	sources, err := ReadSources(dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.True(t, strings.HasSuffix(sources[0].Name, "a.bnb"))
	assert.Equal(t, "place A\n", string(sources[0].Text))

	m := SourceMap(sources)
	assert.Equal(t, []byte("place B\n"), m[sources[1].Name])

	_, err = ReadSources(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
