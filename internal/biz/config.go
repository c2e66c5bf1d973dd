package biz

import (
	"tumble/internal/conf"
	"tumble/internal/slot"
)

// gameConfig lays the non-zero values of c over the built-in tuning.
func gameConfig(c *conf.Game) *slot.GameConfig {
	cfg := slot.DefaultConfig()
	if c == nil {
		return cfg
	}
	setInt(&cfg.Columns, c.Columns)
	setInt(&cfg.Rows, c.Rows)
	setInt(&cfg.MinCluster, c.MinCluster)
	setInt(&cfg.BonusScatters, c.BonusScatters)
	setInt(&cfg.MaxCascades, c.MaxCascades)
	if len(c.Pool) > 0 {
		cfg.Pool = c.Pool
	}
	if f := c.Force; f != nil {
		setInt(&cfg.Force.BlobEvery, f.BlobEvery)
		setInt(&cfg.Force.ScatterEvery, f.ScatterEvery)
		setInt(&cfg.Force.ScatterCount, f.ScatterCount)
		setInt(&cfg.Force.BlobMin, f.BlobMin)
		setInt(&cfg.Force.BlobMax, f.BlobMax)
	}
	return cfg
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// every reports whether spin n falls on a cadence of interval. Non-positive
// intervals never fire.
func every(n, interval int) bool {
	return interval > 0 && n%interval == 0
}
