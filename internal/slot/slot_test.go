package slot

import (
	"math/rand/v2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	cfg.DisableStacktrace = true
	logger, _ := cfg.Build()
	Log = logger
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// checkerboard alternates a and b so that no two neighbours share a
// symbol and the background never forms a cluster.
func checkerboard(cols, rows int, a, b Symbol) *Grid {
	g := NewGrid(cols, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			if (c+r)%2 == 0 {
				g.Set(c, r, a)
			} else {
				g.Set(c, r, b)
			}
		}
	}
	return g
}

func cellSet(cells []Cell) map[Cell]bool {
	m := make(map[Cell]bool, len(cells))
	for _, c := range cells {
		m[c] = true
	}
	return m
}
