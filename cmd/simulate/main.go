package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"tumble/internal/biz"
	"tumble/internal/conf"
	"tumble/internal/event"

	"github.com/yola1107/kratos/contrib/log/zap/v2"
	"github.com/yola1107/kratos/v2/config"
	"github.com/yola1107/kratos/v2/config/file"
	"github.com/yola1107/kratos/v2/log"
)

var (
	flagconf   string
	flagrounds int64
	flagseed   uint64
	flagevery  int64
)

func init() {
	flag.StringVar(&flagconf, "conf", "", "optional config path, only the game section is used")
	flag.Int64Var(&flagrounds, "n", 1e6, "number of spins")
	flag.Uint64Var(&flagseed, "seed", 0, "random seed, 0 picks one")
	flag.Int64Var(&flagevery, "progress", 1e5, "progress interval in spins")
}

func loadGame() (*conf.Game, error) {
	game := &conf.Game{}
	if flagconf == "" {
		return game, nil
	}
	c := config.New(config.WithSource(file.NewSource(flagconf)))
	defer c.Close()
	if err := c.Load(); err != nil {
		return nil, err
	}
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, err
	}
	if bc.Game != nil {
		game = bc.Game
	}
	return game, nil
}

func main() {
	flag.Parse()

	zapLogger := zap.New(nil)
	defer zapLogger.Close()

	log.SetLogger(zapLogger)

	game, err := loadGame()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	game.AutoAck = true
	if flagseed != 0 {
		game.Seed = flagseed
	}

	bus := event.NewBus(zapLogger)
	tm, cleanup, err := biz.NewTumble(game, bus, nil, zapLogger)
	if err != nil {
		log.Fatalf("build orchestrator: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	report, err := biz.Simulate(ctx, tm, flagrounds, func(done int64, r *biz.Report) {
		if flagevery > 0 && done%flagevery == 0 {
			log.Infof("progress %d/%d hit=%.2f%% bonus=%.2f%% elapsed=%s",
				done, flagrounds, r.HitRate(), r.BonusRate(), time.Since(start).Round(time.Millisecond))
		}
	})
	if err != nil {
		log.Warnf("simulation stopped early: %v", err)
	}
	fmt.Print(report)
	fmt.Printf("elapsed:         %s\n", time.Since(start).Round(time.Millisecond))
}
