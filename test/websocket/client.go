package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"tumble/encoding"
	"tumble/internal/event"

	"github.com/gorilla/websocket"
	"github.com/yola1107/kratos/contrib/log/zap/v2"
	"github.com/yola1107/kratos/v2/log"
)

var (
	endpoint  string
	animation time.Duration
	interval  time.Duration
)

func init() {
	flag.StringVar(&endpoint, "endpoint", "ws://127.0.0.1:8000/v1/events", "event stream url")
	flag.DurationVar(&animation, "anim", 300*time.Millisecond, "pretend animation time per stage")
	flag.DurationVar(&interval, "interval", 2*time.Second, "spin request interval")
}

type envelope struct {
	Topic   event.Topic    `json:"topic"`
	Payload map[string]any `json:"payload"`
}

func main() {
	flag.Parse()

	zapLogger := zap.New(nil)
	defer zapLogger.Close()

	log.SetLogger(zapLogger)

	log.Infof("start websocket client")
	defer log.Infof("close websocket client")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	outbox := make(chan event.Topic, 16)
	outbox <- event.SpinRequested
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			var topic event.Topic
			select {
			case <-ctx.Done():
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			case <-ticker.C:
				topic = event.SpinRequested
			case topic = <-outbox:
			}
			if err := conn.WriteJSON(map[string]event.Topic{"topic": topic}); err != nil {
				log.Errorf("write: %v", err)
				return
			}
		}
	}()

	ack := func(topic event.Topic) {
		time.AfterFunc(animation, func() { outbox <- topic })
	}

	for {
		_, buf, err := conn.ReadMessage()
		if err != nil {
			log.Infof("read: %v", err)
			return
		}
		var env envelope
		if err := encoding.Unmarshal(buf, &env); err != nil {
			log.Warnf("bad message: %v", err)
			continue
		}
		switch env.Topic {
		case event.BoardDropped:
			log.Infof("ws-> board dropped. spin=%v forcedBlob=%v forcedScatters=%v",
				env.Payload["spin"], env.Payload["forcedBlob"], env.Payload["forcedScatters"])
			ack(event.DropFinished)
		case event.ClusterResolved:
			log.Infof("ws-> clusters. step=%v cleared=%v hasWild=%v",
				env.Payload["step"], env.Payload["cleared"], env.Payload["hasWild"])
			ack(event.ExplodeFinished)
		case event.BoardCollapsed:
			ack(event.CollapseFinished)
		case event.Anticipate:
			log.Infof("ws-> anticipate")
		case event.BonusTriggered:
			log.Infof("ws-> bonus! scatters=%v", env.Payload["scatters"])
		case event.SpinSettled:
			log.Infof("ws-> settled. %s", encoding.ToJson(env.Payload))
		}
	}
}
