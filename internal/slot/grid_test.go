package slot

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromColumns(t *testing.T) {
	g, err := FromColumns([][]Symbol{
		{AA, BB, CC},
		{DD, EE, FF},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Columns())
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, AA, g.At(0, 0))
	assert.Equal(t, FF, g.At(1, 2))
	assert.Equal(t, Empty, g.At(2, 0))
	assert.Equal(t, []Symbol{DD, EE, FF}, g.Column(1))

	_, err = FromColumns([][]Symbol{{AA, BB}, {CC}})
	assert.ErrorIs(t, err, ErrMalformedGrid)

	g, err = FromColumns(nil)
	require.NoError(t, err)
	assert.Zero(t, g.Size())
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := Fill(3, 3, AA)
	c := g.Clone()
	c.Set(1, 1, Wild)
	assert.Equal(t, AA, g.At(1, 1))
	assert.Equal(t, Wild, c.At(1, 1))
	assert.False(t, g.Equal(c))
}

func TestGridOutOfBounds(t *testing.T) {
	g := Fill(2, 2, BB)
	g.Set(-1, 0, Wild)
	g.Set(0, 5, Wild)
	assert.Equal(t, 0, g.Count(Wild))
	assert.True(t, g.Full())

	var nilGrid *Grid
	assert.Zero(t, nilGrid.Size())
	assert.False(t, nilGrid.InBounds(0, 0))
}

func TestGridJSON(t *testing.T) {
	g, err := FromColumns([][]Symbol{{AA, Wild}, {Scatter, II}})
	require.NoError(t, err)

	data, err := jsoniter.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `[["AA","WD"],["SC","II"]]`, string(data))

	var back Grid
	require.NoError(t, jsoniter.Unmarshal(data, &back))
	assert.True(t, g.Equal(&back))
}

func TestParseSymbol(t *testing.T) {
	for _, s := range append(PaySymbols(), Wild, Scatter) {
		got, err := ParseSymbol(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSymbol("ZZ")
	assert.Error(t, err)
	assert.False(t, Wild.IsPay())
	assert.False(t, Scatter.IsPay())
	assert.False(t, Empty.IsPay())
}
