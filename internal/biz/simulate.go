package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yola1107/kratos/v2/errors"
)

var ErrNotHeadless = errors.BadRequest("NOT_HEADLESS", "simulation needs auto_ack enabled")

// Report aggregates a batch of headless spins.
type Report struct {
	Rounds         int64 `json:"rounds"`
	WinRounds      int64 `json:"winRounds"`
	Cascades       int64 `json:"cascades"`
	LongestCascade int64 `json:"longestCascade"`
	Cleared        int64 `json:"cleared"`
	WildSteps      int64 `json:"wildSteps"`
	BonusRounds    int64 `json:"bonusRounds"`
	ForcedBlobs    int64 `json:"forcedBlobs"`
	ForcedScatters int64 `json:"forcedScatters"`
	Truncated      int64 `json:"truncated"`
	MaxStreak      int64 `json:"maxStreak"`
}

// Add folds one outcome into the report.
func (r *Report) Add(o *Outcome) {
	r.Rounds++
	if o.Win() {
		r.WinRounds++
	}
	steps := int64(len(o.Steps))
	r.Cascades += steps
	r.LongestCascade = max(r.LongestCascade, steps)
	r.Cleared += int64(o.Cleared())
	for _, s := range o.Steps {
		if s.HasWild {
			r.WildSteps++
		}
	}
	if o.Bonus {
		r.BonusRounds++
	}
	if o.ForcedBlob {
		r.ForcedBlobs++
	}
	if o.ForcedScatters {
		r.ForcedScatters++
	}
	if o.Truncated {
		r.Truncated++
	}
	r.MaxStreak = max(r.MaxStreak, int64(o.Streak))
}

// HitRate is the percentage of rounds with at least one cluster.
func (r *Report) HitRate() float64 { return percent(r.WinRounds, r.Rounds) }

// BonusRate is the percentage of rounds that triggered the bonus.
func (r *Report) BonusRate() float64 { return percent(r.BonusRounds, r.Rounds) }

// AvgCascades is the mean number of cascade steps per winning round.
func (r *Report) AvgCascades() float64 { return ratio(r.Cascades, r.WinRounds) }

// AvgCleared is the mean number of cleared cells per round.
func (r *Report) AvgCleared() float64 { return ratio(r.Cleared, r.Rounds) }

func percent(a, b int64) float64 {
	if b == 0 {
		return 0
	}
	return decimal.NewFromInt(a).Div(decimal.NewFromInt(b)).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func ratio(a, b int64) float64 {
	if b == 0 {
		return 0
	}
	return decimal.NewFromInt(a).Div(decimal.NewFromInt(b)).Round(4).InexactFloat64()
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rounds:          %d\n", r.Rounds)
	fmt.Fprintf(&b, "hit rate:        %.2f%%\n", r.HitRate())
	fmt.Fprintf(&b, "avg cascades:    %.4f (longest %d)\n", r.AvgCascades(), r.LongestCascade)
	fmt.Fprintf(&b, "avg cleared:     %.4f\n", r.AvgCleared())
	fmt.Fprintf(&b, "wild steps:      %d\n", r.WildSteps)
	fmt.Fprintf(&b, "bonus rate:      %.2f%%\n", r.BonusRate())
	fmt.Fprintf(&b, "forced blobs:    %d\n", r.ForcedBlobs)
	fmt.Fprintf(&b, "forced scatters: %d\n", r.ForcedScatters)
	fmt.Fprintf(&b, "truncated:       %d\n", r.Truncated)
	fmt.Fprintf(&b, "max streak:      %d\n", r.MaxStreak)
	return b.String()
}

// Simulate runs rounds spins back to back and aggregates them. progress,
// when non-nil, is called after every spin.
func Simulate(ctx context.Context, t *Tumble, rounds int64, progress func(done int64, r *Report)) (*Report, error) {
	if !t.autoAck {
		return nil, ErrNotHeadless
	}
	r := &Report{}
	for i := int64(0); i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		o, err := t.Spin(ctx)
		if err != nil {
			return r, err
		}
		r.Add(o)
		if progress != nil {
			progress(i+1, r)
		}
	}
	return r, nil
}
