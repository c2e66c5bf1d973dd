package service

import (
	"context"
	nethttp "net/http"
	"slices"
	"time"

	"tumble/encoding"
	"tumble/internal/event"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
	streamBuffer = 64
	maxInbound   = 1 << 10
)

// inbound is what a client may send on the stream: a spin request or one
// of the acknowledgements.
type inbound struct {
	Topic event.Topic `json:"topic"`
}

// Events upgrades to a websocket and streams every notification as an
// event.Envelope. The client can answer on the same socket.
func (s *TumbleService) Events(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade: %v", err)
		return
	}
	s.log.Infof("event stream opened: %s", conn.RemoteAddr())

	out := make(chan event.Envelope, streamBuffer)
	off := s.bus.OnAny(func(_ context.Context, topic event.Topic, payload any) {
		select {
		case out <- event.Envelope{Topic: topic, Payload: payload, Time: time.Now().UnixMilli()}:
		default:
			s.log.Warnf("event stream %s lagging, dropped %s", conn.RemoteAddr(), topic)
		}
	})

	done := make(chan struct{})
	go s.writeLoop(conn, out, done)
	s.readLoop(conn)

	off()
	close(done)
	s.log.Infof("event stream closed: %s", conn.RemoteAddr())
}

func (s *TumbleService) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	conn.SetReadLimit(maxInbound)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, buf, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warnf("event stream read: %v", err)
			}
			return
		}
		var in inbound
		if err := encoding.Unmarshal(buf, &in); err != nil {
			s.log.Warnf("event stream bad message %q: %v", buf, err)
			continue
		}
		if !slices.Contains(event.Inbound, in.Topic) {
			s.log.Warnf("event stream ignored topic %q", in.Topic)
			continue
		}
		s.bus.Emit(context.Background(), in.Topic, nil)
	}
}

func (s *TumbleService) writeLoop(conn *websocket.Conn, out <-chan event.Envelope, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case <-done:
			return
		case env := <-out:
			body, err := encoding.Marshal(env)
			if err != nil {
				s.log.Errorf("encode %s: %v", env.Topic, err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
