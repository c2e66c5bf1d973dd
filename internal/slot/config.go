package slot

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

const _gameJsonConfigsRaw = `{
  "columns": 6,
  "rows": 5,
  "min_cluster": 5,
  "bonus_scatters": 3,
  "max_cascades": 100,
  "pool": ["AA", "BB", "CC", "DD", "EE", "FF", "GG", "HH", "II"],
  "force": {
    "blob_every": 3,
    "scatter_every": 5,
    "scatter_count": 3,
    "blob_min": 5,
    "blob_max": 9
  }
}`

// GameConfig holds the tuning of one machine.
type GameConfig struct {
	Columns       int         `json:"columns"`
	Rows          int         `json:"rows"`
	MinCluster    int         `json:"min_cluster"`
	BonusScatters int         `json:"bonus_scatters"`
	MaxCascades   int         `json:"max_cascades"`
	Pool          []string    `json:"pool"`
	Force         ForceConfig `json:"force"`
}

// ForceConfig sets the spin-count cadence of rigged boards. A zero or
// negative interval disables that kind of forcing. Overrides from the
// service config treat zero as unset, so they disable with -1.
type ForceConfig struct {
	BlobEvery    int `json:"blob_every"`
	ScatterEvery int `json:"scatter_every"`
	ScatterCount int `json:"scatter_count"`
	BlobMin      int `json:"blob_min"`
	BlobMax      int `json:"blob_max"`
}

// DefaultConfig returns the built-in machine tuning.
func DefaultConfig() *GameConfig {
	cfg := &GameConfig{}
	if err := jsoniter.UnmarshalFromString(_gameJsonConfigsRaw, cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Symbols resolves the configured pool codes.
func (c *GameConfig) Symbols() ([]Symbol, error) {
	out := make([]Symbol, 0, len(c.Pool))
	for _, code := range c.Pool {
		s, err := ParseSymbol(code)
		if err != nil {
			return nil, err
		}
		if !s.IsPay() {
			return nil, fmt.Errorf("pool symbol %s is not a pay symbol", s)
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *GameConfig) Validate() error {
	if c.Columns <= 0 || c.Rows <= 0 {
		return fmt.Errorf("invalid board %dx%d", c.Columns, c.Rows)
	}
	if c.MinCluster <= 0 {
		return fmt.Errorf("invalid min_cluster %d", c.MinCluster)
	}
	if c.MaxCascades <= 0 {
		return fmt.Errorf("invalid max_cascades %d", c.MaxCascades)
	}
	if _, err := c.Symbols(); err != nil {
		return err
	}
	return nil
}

// NewGeneratorFromConfig builds a generator honouring the pool and blob
// bounds of c.
func NewGeneratorFromConfig(c *GameConfig, opts ...GeneratorOption) (*Generator, error) {
	pool, err := c.Symbols()
	if err != nil {
		return nil, err
	}
	lo := max(c.Force.BlobMin, c.MinCluster)
	base := []GeneratorOption{WithPool(pool), WithBlobSize(lo, c.Force.BlobMax)}
	return NewGenerator(append(base, opts...)...), nil
}
