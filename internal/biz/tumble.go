package biz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"tumble/internal/conf"
	"tumble/internal/event"
	"tumble/internal/slot"

	"github.com/looplab/fsm"
	"github.com/yola1107/kratos/v2/log"
)

// Tumble drives one board through drop, resolve, explode and collapse
// until it settles. Only one spin runs at a time; every suspension point
// waits for presentation to acknowledge on the bus, unless auto ack is on.
type Tumble struct {
	cfg     *slot.GameConfig
	gen     *slot.Generator
	det     slot.Detector
	bus     Notifier
	repo    StreakRepo
	autoAck bool
	log     *log.Helper

	machine *fsm.FSM
	ready   atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.RWMutex
	board  *slot.Grid
	spins  int
	streak int
	last   *Outcome
}

// Snapshot is a read-only view of the orchestrator.
type Snapshot struct {
	State  string     `json:"state"`
	Ready  bool       `json:"ready"`
	Spins  int        `json:"spins"`
	Streak int        `json:"streak"`
	Board  *slot.Grid `json:"board"`
	Last   *Outcome   `json:"last,omitempty"`
}

// NewTumble builds the orchestrator, shows an initial board and starts
// listening for spin requests on the bus.
func NewTumble(c *conf.Game, bus Notifier, repo StreakRepo, logger log.Logger) (*Tumble, func(), error) {
	cfg := gameConfig(c)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("game config: %w", err)
	}
	var opts []slot.GeneratorOption
	if c != nil && c.Seed != 0 {
		opts = append(opts, slot.WithRand(rand.New(rand.NewPCG(c.Seed, c.Seed))))
	}
	gen, err := slot.NewGeneratorFromConfig(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}

	helper := log.NewHelper(log.With(logger, "module", "biz/tumble"))
	ctx, cancel := context.WithCancel(context.Background())
	t := &Tumble{
		cfg:     cfg,
		gen:     gen,
		det:     slot.NewDetector(cfg.MinCluster),
		bus:     bus,
		repo:    repo,
		autoAck: c != nil && c.AutoAck,
		log:     helper,
		machine: newMachine(helper),
		ctx:     ctx,
		cancel:  cancel,
	}
	t.ready.Store(true)
	t.board = gen.Generate(cfg.Columns, cfg.Rows)
	if repo != nil {
		n, err := repo.Load(ctx)
		if err != nil {
			helper.Warnf("load streak: %v", err)
		}
		t.streak = n
	}

	off := bus.On(event.SpinRequested, t.onSpinRequested)
	cleanup := func() {
		off()
		cancel()
	}
	return t, cleanup, nil
}

// Config returns the effective machine tuning.
func (t *Tumble) Config() *slot.GameConfig { return t.cfg }

// Ready reports whether a new spin would be accepted.
func (t *Tumble) Ready() bool { return t.ready.Load() }

// State is the current orchestrator state.
func (t *Tumble) State() string { return t.machine.Current() }

// Board returns a copy of the current board. Before the first spin this is
// the initial screen; during Clearing it is nil.
func (t *Tumble) Board() *slot.Grid {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.board == nil {
		return nil
	}
	return t.board.Clone()
}

// Streak is the number of consecutive spins without a cluster.
func (t *Tumble) Streak() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.streak
}

func (t *Tumble) Snapshot() Snapshot {
	board := t.Board()
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		State:  t.machine.Current(),
		Ready:  t.ready.Load(),
		Spins:  t.spins,
		Streak: t.streak,
		Board:  board,
		Last:   t.last,
	}
}

// Spin runs one spin to completion on the calling goroutine. It returns
// ErrSpinInProgress without side effects when another spin is running.
func (t *Tumble) Spin(ctx context.Context) (*Outcome, error) {
	if !t.ready.CompareAndSwap(true, false) {
		return nil, ErrSpinInProgress
	}
	defer t.ready.Store(true)
	return t.run(ctx)
}

// onSpinRequested closes the ready gate before returning so back-to-back
// requests are dropped deterministically, then spins in the background.
func (t *Tumble) onSpinRequested(context.Context, any) {
	if !t.ready.CompareAndSwap(true, false) {
		t.log.Debug("spin request ignored, spin in progress")
		return
	}
	go func() {
		defer t.ready.Store(true)
		if _, err := t.run(t.ctx); err != nil {
			t.log.Warnf("spin aborted: %v", err)
		}
	}()
}

func (t *Tumble) run(ctx context.Context) (*Outcome, error) {
	out, err := t.spin(ctx)
	if err != nil {
		if aerr := t.machine.Event(context.WithoutCancel(ctx), evAbort); aerr != nil {
			t.log.Errorf("abort from %s: %v", t.machine.Current(), aerr)
		}
		return nil, err
	}
	return out, nil
}

func (t *Tumble) spin(ctx context.Context) (*Outcome, error) {
	if err := t.transit(ctx, evClear); err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.board = nil
	t.spins++
	n := t.spins
	t.mu.Unlock()
	t.bus.Emit(ctx, event.SpinStarted, SpinStarted{Spin: n})

	if err := t.transit(ctx, evDrop); err != nil {
		return nil, err
	}
	out := &Outcome{Spin: n}
	board := t.gen.Generate(t.cfg.Columns, t.cfg.Rows)
	if every(n, t.cfg.Force.BlobEvery) {
		out.ForcedBlob = t.gen.ForceBlob(board)
	}
	if every(n, t.cfg.Force.ScatterEvery) {
		out.ForcedScatters = t.gen.ForceScatters(board, t.cfg.Force.ScatterCount)
	}
	out.Initial = board
	t.setBoard(board)
	if err := t.await(ctx, event.DropFinished, event.BoardDropped, BoardDropped{
		Spin:           n,
		Board:          board,
		ForcedBlob:     out.ForcedBlob,
		ForcedScatters: out.ForcedScatters,
	}); err != nil {
		return nil, err
	}

	for {
		if err := t.transit(ctx, evResolve); err != nil {
			return nil, err
		}
		clusters := t.det.Detect(board)
		if len(clusters) == 0 {
			break
		}
		if len(out.Steps) >= t.cfg.MaxCascades {
			t.log.Warnf("spin %d stopped after %d cascades", n, len(out.Steps))
			out.Truncated = true
			break
		}
		if len(out.Steps) == 0 {
			t.bus.Emit(ctx, event.Anticipate, nil)
		}
		step := Step{
			Clusters: clusters,
			HasWild:  slot.AnyWild(clusters),
			Cleared:  slot.ClearedCells(clusters),
		}
		index := len(out.Steps) + 1

		if err := t.transit(ctx, evExplode); err != nil {
			return nil, err
		}
		board = slot.Explode(board, clusters)
		t.setBoard(board)
		if err := t.await(ctx, event.ExplodeFinished, event.ClusterResolved, ClusterResolved{
			Spin:     n,
			Step:     index,
			Clusters: clusters,
			HasWild:  step.HasWild,
			Cleared:  step.Cleared,
		}); err != nil {
			return nil, err
		}

		if err := t.transit(ctx, evCollapse); err != nil {
			return nil, err
		}
		board = slot.Collapse(board, t.gen.Symbol)
		t.setBoard(board)
		step.Board = board
		out.Steps = append(out.Steps, step)
		if err := t.await(ctx, event.CollapseFinished, event.BoardCollapsed, BoardCollapsed{
			Spin:  n,
			Step:  index,
			Board: board,
		}); err != nil {
			return nil, err
		}
	}

	if err := t.transit(ctx, evSettle); err != nil {
		return nil, err
	}
	out.Final = board
	out.Scatters = slot.CountScatters(board)
	out.Bonus = t.cfg.BonusScatters > 0 && out.Scatters >= t.cfg.BonusScatters
	out.Streak = t.recordStreak(ctx, out.Win())
	t.mu.Lock()
	t.last = out
	t.mu.Unlock()

	if out.Bonus {
		t.bus.Emit(ctx, event.BonusTriggered, BonusTriggered{Spin: n, Scatters: out.Scatters})
	}
	t.bus.Emit(ctx, event.SpinSettled, SpinSettled{
		Spin:      n,
		TotalWin:  out.Cleared(),
		Cascades:  len(out.Steps),
		Streak:    out.Streak,
		Bonus:     out.Bonus,
		Truncated: out.Truncated,
	})
	if err := t.transit(ctx, evReset); err != nil {
		return nil, err
	}
	t.log.Debugf("spin %d settled: cascades=%d cleared=%d scatters=%d streak=%d",
		n, len(out.Steps), out.Cleared(), out.Scatters, out.Streak)
	return out, nil
}

// transit fires ev on the state machine. The machine never sees a
// cancellable context: a cancelled one would leave it stuck mid-transition.
func (t *Tumble) transit(ctx context.Context, ev string) error {
	if err := t.machine.Event(context.WithoutCancel(ctx), ev); err != nil {
		return fmt.Errorf("%s from %s: %w", ev, t.machine.Current(), err)
	}
	return nil
}

// await emits topic and blocks until ack arrives. The subscription is
// registered first so a synchronous acknowledgement is not lost.
func (t *Tumble) await(ctx context.Context, ack, topic event.Topic, payload any) error {
	var f *event.Future
	if t.autoAck {
		f = event.Resolved(nil)
	} else {
		f = t.bus.Expect(ack)
	}
	t.bus.Emit(ctx, topic, payload)
	if _, err := f.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for %s: %w", ack, err)
	}
	return nil
}

func (t *Tumble) setBoard(g *slot.Grid) {
	t.mu.Lock()
	t.board = g
	t.mu.Unlock()
}

func (t *Tumble) recordStreak(ctx context.Context, win bool) int {
	t.mu.Lock()
	if win {
		t.streak = 0
	} else {
		t.streak++
	}
	n := t.streak
	t.mu.Unlock()
	if t.repo != nil {
		if err := t.repo.Save(ctx, n); err != nil {
			t.log.Warnf("save streak: %v", err)
		}
	}
	return n
}
