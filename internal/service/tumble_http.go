package service

import (
	"context"

	"github.com/yola1107/kratos/v2/transport/http"
)

const (
	OperationTumbleSpin  = "/tumble.v1.Tumble/Spin"
	OperationTumbleAck   = "/tumble.v1.Tumble/Ack"
	OperationTumbleState = "/tumble.v1.Tumble/State"
)

type SpinRequest struct{}

type AckRequest struct {
	Stage string `json:"stage"`
}

type StateRequest struct{}

type SpinReply struct {
	Accepted bool   `json:"accepted"`
	State    string `json:"state"`
	Ready    bool   `json:"ready"`
}

type TumbleHTTPServer interface {
	Spin(context.Context, *SpinRequest) (*SpinReply, error)
	Ack(context.Context, *AckRequest) (*SpinReply, error)
	State(context.Context, *StateRequest) (*StateReply, error)
}

// RegisterTumbleHTTPServer mounts the request/response routes. The event
// stream is a plain handler because it hijacks the connection.
func RegisterTumbleHTTPServer(s *http.Server, srv TumbleHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/spin", _Tumble_Spin0_HTTP_Handler(srv))
	r.POST("/v1/ack/{stage}", _Tumble_Ack0_HTTP_Handler(srv))
	r.GET("/v1/state", _Tumble_State0_HTTP_Handler(srv))
}

func _Tumble_Spin0_HTTP_Handler(srv TumbleHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SpinRequest
		http.SetOperation(ctx, OperationTumbleSpin)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Spin(ctx, req.(*SpinRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SpinReply)
		return ctx.Result(200, reply)
	}
}

func _Tumble_Ack0_HTTP_Handler(srv TumbleHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		in := AckRequest{Stage: ctx.Vars().Get("stage")}
		http.SetOperation(ctx, OperationTumbleAck)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Ack(ctx, req.(*AckRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SpinReply)
		return ctx.Result(200, reply)
	}
}

func _Tumble_State0_HTTP_Handler(srv TumbleHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in StateRequest
		http.SetOperation(ctx, OperationTumbleState)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.State(ctx, req.(*StateRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*StateReply)
		return ctx.Result(200, reply)
	}
}
