package biz

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/yola1107/kratos/v2/log"
)

// Orchestrator states.
const (
	StateIdle       = "idle"
	StateClearing   = "clearing"
	StateDropping   = "dropping"
	StateResolving  = "resolving"
	StateExploding  = "exploding"
	StateCollapsing = "collapsing"
	StateSettled    = "settled"
)

const (
	evClear    = "clear"
	evDrop     = "drop"
	evResolve  = "resolve"
	evExplode  = "explode"
	evCollapse = "collapse"
	evSettle   = "settle"
	evReset    = "reset"
	evAbort    = "abort"
)

func newMachine(logger *log.Helper) *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: evClear, Src: []string{StateIdle}, Dst: StateClearing},
			{Name: evDrop, Src: []string{StateClearing}, Dst: StateDropping},
			{Name: evResolve, Src: []string{StateDropping, StateCollapsing}, Dst: StateResolving},
			{Name: evExplode, Src: []string{StateResolving}, Dst: StateExploding},
			{Name: evCollapse, Src: []string{StateExploding}, Dst: StateCollapsing},
			{Name: evSettle, Src: []string{StateResolving}, Dst: StateSettled},
			{Name: evReset, Src: []string{StateSettled}, Dst: StateIdle},
			{Name: evAbort, Src: []string{
				StateClearing, StateDropping, StateResolving,
				StateExploding, StateCollapsing, StateSettled,
			}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debugf("state %s -> %s (%s)", e.Src, e.Dst, e.Event)
			},
		},
	)
}
