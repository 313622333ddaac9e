package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_Error(t *testing.T) {
	d := New(UnknownPlace, Pos{Filename: "a.bnb", Line: 3, Column: 12}, "Nowhere", "unknown place %q", "Nowhere")
	assert.Equal(t, `a.bnb:3:12: UnknownPlace: unknown place "Nowhere"`, d.Error())

	d.Detail = "did you mean \"Home\"?"
	assert.Contains(t, d.Error(), `(did you mean "Home"?)`)

	noPos := New(DuplicateName, Pos{}, "Home", "duplicate place %q", "Home")
	assert.Equal(t, `DuplicateName: duplicate place "Home"`, noPos.Error())
}

func TestDiagnostics_Err(t *testing.T) {
	var ds Diagnostics
	assert.NoError(t, ds.Err())
	assert.False(t, ds.HasErrors())

	ds = append(ds, Syntax(Pos{Line: 1, Column: 1}, "expected place name"))
	err := ds.Err()
	require.Error(t, err)

	var got Diagnostics
	require.True(t, errors.As(err, &got))
	assert.Len(t, got, 1)
}

func TestDiagnostics_SortAndFilter(t *testing.T) {
	ds := Diagnostics{
		New(UnknownPlace, Pos{}, "x", "no position"),
		Syntax(Pos{Filename: "b.bnb", Line: 1, Column: 1}, "b1"),
		Syntax(Pos{Filename: "a.bnb", Line: 4, Column: 2}, "a4"),
		Syntax(Pos{Filename: "a.bnb", Line: 2, Column: 9}, "a2"),
	}
	ds.Sort()

	var order []string
	for _, d := range ds {
		order = append(order, d.Summary)
	}
	assert.Equal(t, []string{"a2", "a4", "b1", "no position"}, order)
	assert.Len(t, ds.OfKind(SyntaxError), 3)
	assert.Len(t, ds.OfKind(UnknownPlace), 1)
	assert.Empty(t, ds.OfKind(CyclicPosition))
}

func TestCycle(t *testing.T) {
	d := Cycle(CyclicPosition, Pos{}, []string{"A", "B", "A"})
	assert.Equal(t, "A", d.Subject)
	assert.Equal(t, "cycle detected: A -> B -> A", d.Summary)
}

func TestDiagnostics_HCL(t *testing.T) {
	ds := Diagnostics{
		Syntax(Pos{Filename: "a.bnb", Line: 2, Column: 3, Offset: 10}, "expected place name"),
		New(DuplicateName, Pos{}, "Home", "duplicate place %q", "Home"),
	}

	hd := ds.HCL()
	require.Len(t, hd, 2)
	assert.Equal(t, hcl.DiagError, hd[0].Severity)
	require.NotNil(t, hd[0].Subject)
	assert.Equal(t, "a.bnb", hd[0].Subject.Filename)
	assert.Equal(t, 10, hd[0].Subject.Start.Byte)
	assert.Nil(t, hd[1].Subject)

	var buf bytes.Buffer
	src := map[string][]byte{"a.bnb": []byte("place Home\n  place\n")}
	require.NoError(t, Write(&buf, ds, src, 80, false))
	assert.Contains(t, buf.String(), "SyntaxError: expected place name")
	assert.Contains(t, buf.String(), "DuplicateName")
}
