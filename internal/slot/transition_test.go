package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplode(t *testing.T) {
	g := Fill(6, 5, AA)
	g.Set(0, 0, Wild)
	clusters := Detect(g)
	require.Len(t, clusters, 1)

	out := Explode(g, clusters)
	assert.Equal(t, 30, out.Count(Empty))
	assert.True(t, g.Full(), "input must not change")
}

func TestCollapse(t *testing.T) {
	g, err := FromColumns([][]Symbol{
		{AA, Empty, BB, Empty, CC},
		{DD, EE, FF, GG, HH},
		{Empty, Empty, Empty, Empty, Empty},
	})
	require.NoError(t, err)

	out := Collapse(g, func() Symbol { return II })
	assert.Equal(t, []Symbol{II, II, AA, BB, CC}, out.Column(0))
	assert.Equal(t, []Symbol{DD, EE, FF, GG, HH}, out.Column(1))
	assert.Equal(t, []Symbol{II, II, II, II, II}, out.Column(2))
	assert.Equal(t, 7, g.Count(Empty), "input must not change")

	holes := Collapse(g, nil)
	assert.Equal(t, []Symbol{Empty, Empty, AA, BB, CC}, holes.Column(0))
}

func TestCollapsePreservesOrder(t *testing.T) {
	gen := NewGenerator(WithRand(testRand()))
	for i := 0; i < 200; i++ {
		g := gen.Generate(6, 5)
		gen.ForceBlob(g)
		clusters := Detect(g)
		exploded := Explode(g, clusters)

		refilled := 0
		out := Collapse(exploded, func() Symbol {
			refilled++
			return gen.Symbol()
		})
		require.True(t, out.Full())
		assert.Equal(t, ClearedCells(clusters), refilled)

		for c := 0; c < 6; c++ {
			survivors := []Symbol{}
			for _, s := range exploded.Column(c) {
				if s != Empty {
					survivors = append(survivors, s)
				}
			}
			col := out.Column(c)
			assert.Equal(t, survivors, col[len(col)-len(survivors):])
		}
	}
}

func TestCascadeTerminates(t *testing.T) {
	gen := NewGenerator(WithRand(testRand()))
	d := NewDetector(DefaultMinClusterSize)
	for i := 0; i < 200; i++ {
		g := gen.Generate(6, 5)
		gen.ForceBlob(g)
		steps := 0
		for {
			clusters := d.Detect(g)
			if len(clusters) == 0 {
				break
			}
			steps++
			require.Less(t, steps, 100)
			g = Collapse(Explode(g, clusters), gen.Symbol)
		}
		assert.Empty(t, d.Detect(g))
	}
}

func TestCountScatters(t *testing.T) {
	g := Fill(3, 3, AA)
	g.Set(0, 0, Scatter)
	g.Set(2, 2, Scatter)
	assert.Equal(t, 2, CountScatters(g))
}
