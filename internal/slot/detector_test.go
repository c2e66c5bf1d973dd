package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAllSameWithOneWild(t *testing.T) {
	g := Fill(6, 5, AA)
	g.Set(2, 3, Wild)

	clusters := Detect(g)
	require.Len(t, clusters, 1)
	assert.Equal(t, AA, clusters[0].Symbol)
	assert.Equal(t, 30, clusters[0].Size())
	assert.True(t, clusters[0].HasWild)
	assert.Len(t, cellSet(clusters[0].Cells), 30)
}

func TestDetectBelowMinimum(t *testing.T) {
	g := checkerboard(6, 5, AA, CC)
	// L-shape of four
	g.Set(0, 0, BB)
	g.Set(0, 1, BB)
	g.Set(0, 2, BB)
	g.Set(1, 2, BB)

	assert.Empty(t, Detect(g))
}

func TestDetectWildBridge(t *testing.T) {
	g := checkerboard(6, 5, DD, EE)
	for _, c := range []int{0, 1, 2, 4, 5} {
		g.Set(c, 0, CC)
	}
	g.Set(3, 0, Wild)
	// left group has 3, right group only 2 plus one below
	g.Set(5, 1, CC)

	clusters := Detect(g)
	require.Len(t, clusters, 1)
	assert.Equal(t, CC, clusters[0].Symbol)
	assert.Equal(t, 7, clusters[0].Size())
	assert.True(t, clusters[0].HasWild)
	assert.True(t, cellSet(clusters[0].Cells)[Cell{Col: 3, Row: 0}])
}

func TestDetectEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		grid *Grid
	}{
		{"nil", nil},
		{"zero", NewGrid(0, 0)},
		{"all wild", Fill(6, 5, Wild)},
		{"all scatter", Fill(6, 5, Scatter)},
		{"all empty", NewGrid(6, 5)},
		{"checkerboard", checkerboard(6, 5, AA, BB)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Detect(tt.grid))
		})
	}
}

func TestDetectScatterBreaksPath(t *testing.T) {
	g := checkerboard(6, 5, DD, EE)
	for c := 0; c < 6; c++ {
		g.Set(c, 0, FF)
	}
	g.Set(2, 0, Scatter)

	assert.Empty(t, Detect(g))
}

func TestDetectWildSharedOnlyOnce(t *testing.T) {
	// AA AA AA WD BB BB BB
	// AA AA -- -- -- BB BB
	g := checkerboard(7, 3, DD, EE)
	for c := 0; c < 3; c++ {
		g.Set(c, 0, AA)
	}
	g.Set(0, 1, AA)
	g.Set(1, 1, AA)
	g.Set(3, 0, Wild)
	for c := 4; c < 7; c++ {
		g.Set(c, 0, BB)
	}
	g.Set(5, 1, BB)
	g.Set(6, 1, BB)

	clusters := Detect(g)
	require.Len(t, clusters, 2)

	// AA is discovered first and takes the wild.
	assert.Equal(t, AA, clusters[0].Symbol)
	assert.True(t, clusters[0].HasWild)
	assert.Equal(t, 6, clusters[0].Size())
	assert.Equal(t, BB, clusters[1].Symbol)
	assert.False(t, clusters[1].HasWild)
	assert.Equal(t, 5, clusters[1].Size())

	seen := map[Cell]int{}
	for _, cl := range clusters {
		for _, c := range cl.Cells {
			seen[c]++
		}
	}
	for c, n := range seen {
		assert.Equal(t, 1, n, "cell %v reported twice", c)
	}
}

func TestDetectWildLeftForLaterCluster(t *testing.T) {
	// AA AA WD BB BB BB BB
	// the two AA do not qualify, so BB keeps the wild
	g := checkerboard(7, 3, DD, EE)
	g.Set(0, 0, AA)
	g.Set(1, 0, AA)
	g.Set(2, 0, Wild)
	for c := 3; c < 7; c++ {
		g.Set(c, 0, BB)
	}

	clusters := Detect(g)
	require.Len(t, clusters, 1)
	assert.Equal(t, BB, clusters[0].Symbol)
	assert.Equal(t, 5, clusters[0].Size())
	assert.True(t, clusters[0].HasWild)
}

func TestDetectWildDoesNotChainWild(t *testing.T) {
	g := checkerboard(7, 3, DD, EE)
	g.Set(0, 0, GG)
	g.Set(1, 0, GG)
	g.Set(2, 0, Wild)
	g.Set(3, 0, Wild)
	g.Set(4, 0, GG)

	// GG GG WD WD GG: the wilds touch each other, not a GG on both sides
	assert.Empty(t, Detect(g))
}

func TestDetectWildBehindWildIsNotMember(t *testing.T) {
	g := checkerboard(7, 3, DD, EE)
	g.Set(0, 0, CC)
	g.Set(1, 0, CC)
	g.Set(2, 0, CC)
	g.Set(3, 0, Wild)
	g.Set(4, 0, Wild)

	// three CC plus the adjacent wild is four; the second wild has no CC neighbour
	assert.Empty(t, Detect(g))

	g.Set(0, 1, CC)
	clusters := Detect(g)
	require.Len(t, clusters, 1)
	assert.Equal(t, CC, clusters[0].Symbol)
	assert.Equal(t, 5, clusters[0].Size())
	assert.NotContains(t, cellSet(clusters[0].Cells), Cell{Col: 4, Row: 0})
}

func TestDetectMinimumSizeConfigurable(t *testing.T) {
	g := checkerboard(6, 5, AA, CC)
	for c := 0; c < 6; c++ {
		g.Set(c, 0, HH)
	}

	assert.Len(t, NewDetector(5).Detect(g), 1)
	assert.Len(t, NewDetector(6).Detect(g), 1)
	assert.Empty(t, NewDetector(7).Detect(g))
	assert.Equal(t, DefaultMinClusterSize, NewDetector(0).MinSize())
}

func TestDetectNeverBelowMinimum(t *testing.T) {
	gen := NewGenerator(WithRand(testRand()))
	d := NewDetector(5)
	for i := 0; i < 500; i++ {
		g := gen.Generate(6, 5)
		if i%2 == 0 {
			gen.ForceBlob(g)
		}
		if i%3 == 0 {
			g.Set(i%6, i%5, Wild)
		}
		for _, cl := range d.Detect(g) {
			require.GreaterOrEqual(t, cl.Size(), 5)
			for _, c := range cl.Cells {
				s := g.At(c.Col, c.Row)
				require.True(t, s == cl.Symbol || s == Wild)
			}
		}
	}
}

func TestDetectDeterministicOrder(t *testing.T) {
	g := checkerboard(6, 5, AA, CC)
	for c := 0; c < 6; c++ {
		g.Set(c, 4, BB)
		g.Set(c, 1, FF)
	}
	clusters := Detect(g)
	require.Len(t, clusters, 2)
	assert.Equal(t, FF, clusters[0].Symbol)
	assert.Equal(t, BB, clusters[1].Symbol)
	assert.Equal(t, Cell{Col: 0, Row: 1}, clusters[0].Cells[0])
}
