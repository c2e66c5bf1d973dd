package service

import (
	"context"
	nethttp "net/http"

	"tumble/internal/biz"
	"tumble/internal/event"
	"tumble/internal/slot"

	"github.com/gorilla/websocket"
	"github.com/yola1107/kratos/v2/errors"
	"github.com/yola1107/kratos/v2/log"
)

var ErrUnknownStage = errors.BadRequest("UNKNOWN_STAGE", "stage must be drop, explode or collapse")

var stageAcks = map[string]event.Topic{
	"drop":     event.DropFinished,
	"explode":  event.ExplodeFinished,
	"collapse": event.CollapseFinished,
}

type StateReply struct {
	State  string       `json:"state"`
	Ready  bool         `json:"ready"`
	Spins  int          `json:"spins"`
	Streak int          `json:"streak"`
	Board  *slot.Grid   `json:"board"`
	Last   *biz.Outcome `json:"last,omitempty"`
}

// TumbleService is the presentation-facing surface of the orchestrator.
// Everything it does goes through the bus, exactly as an in-process
// presentation layer would.
type TumbleService struct {
	uc       *biz.Tumble
	bus      *event.Bus
	upgrader websocket.Upgrader
	log      *log.Helper
}

func NewTumbleService(uc *biz.Tumble, bus *event.Bus, logger log.Logger) *TumbleService {
	return &TumbleService{
		uc:  uc,
		bus: bus,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*nethttp.Request) bool { return true },
		},
		log: log.NewHelper(log.With(logger, "module", "service/tumble")),
	}
}

// Spin requests a spin. A request made while a spin is running is
// dropped; Accepted reports whether the gate was open when it was sent.
func (s *TumbleService) Spin(ctx context.Context, _ *SpinRequest) (*SpinReply, error) {
	accepted := s.uc.Ready()
	s.bus.Emit(ctx, event.SpinRequested, nil)
	return &SpinReply{Accepted: accepted, State: s.uc.State(), Ready: s.uc.Ready()}, nil
}

// Ack reports that presentation finished animating a stage.
func (s *TumbleService) Ack(ctx context.Context, in *AckRequest) (*SpinReply, error) {
	topic, ok := stageAcks[in.Stage]
	if !ok {
		return nil, ErrUnknownStage
	}
	s.bus.Emit(ctx, topic, nil)
	return &SpinReply{Accepted: true, State: s.uc.State(), Ready: s.uc.Ready()}, nil
}

func (s *TumbleService) State(context.Context, *StateRequest) (*StateReply, error) {
	snap := s.uc.Snapshot()
	return &StateReply{
		State:  snap.State,
		Ready:  snap.Ready,
		Spins:  snap.Spins,
		Streak: snap.Streak,
		Board:  snap.Board,
		Last:   snap.Last,
	}, nil
}
