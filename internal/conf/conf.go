package conf

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Game   *Game   `json:"game"`
}

type Server struct {
	Http *Server_HTTP `json:"http"`
}

type Server_HTTP struct {
	Network string    `json:"network"`
	Addr    string    `json:"addr"`
	Timeout *Duration `json:"timeout"`
}

type Data struct {
	Redis    *Data_Redis    `json:"redis"`
	Rabbitmq *Data_Rabbitmq `json:"rabbitmq"`
}

type Data_Redis struct {
	Addr      string `json:"addr"`
	StreakKey string `json:"streak_key"`
	Channel   string `json:"channel"`
}

type Data_Rabbitmq struct {
	Url      string `json:"url"`
	Exchange string `json:"exchange"`
}

// Game overrides the built-in machine tuning. Zero values keep the default.
type Game struct {
	AutoAck       bool     `json:"auto_ack"`
	Seed          uint64   `json:"seed"`
	Columns       int      `json:"columns"`
	Rows          int      `json:"rows"`
	MinCluster    int      `json:"min_cluster"`
	BonusScatters int      `json:"bonus_scatters"`
	MaxCascades   int      `json:"max_cascades"`
	Pool          []string `json:"pool"`
	Force         *Force   `json:"force"`
}

// Force sets the forcing cadence. Zero keeps the built-in default, so
// use -1 to disable that kind of forcing.
type Force struct {
	BlobEvery    int `json:"blob_every"`
	ScatterEvery int `json:"scatter_every"`
	ScatterCount int `json:"scatter_count"`
	BlobMin      int `json:"blob_min"`
	BlobMax      int `json:"blob_max"`
}

// Duration accepts "1.5s" style strings as well as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) AsDuration() time.Duration {
	if d == nil {
		return 0
	}
	return d.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := jsonCodec.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		d.Duration = time.Duration(x)
	case string:
		p, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		d.Duration = p
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return jsonCodec.Marshal(d.String())
}
