package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayusman/handvolume/internal/app"
	"github.com/ayusman/handvolume/internal/audio"
	"github.com/ayusman/handvolume/internal/detector"
	"github.com/ayusman/handvolume/internal/log"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := app.DefaultConfig()

	flag.IntVar(&cfg.CameraID, "camera", cfg.CameraID, "Camera device index")
	flag.BoolVar(&cfg.Mirror, "mirror", cfg.Mirror, "Flip frames horizontally")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Also write rotated JSON logs to this file")
	logJSON := flag.Bool("log-json", false, "Log JSON to stderr instead of console text")
	mockAudio := flag.Bool("mock-audio", false, "Log volume changes instead of driving the system mixer")
	flag.Parse()

	logger, err := log.New(log.Options{Level: *logLevel, JSON: *logJSON, File: *logFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "handvolume: %v\n", err)
		return 2
	}
	defer logger.Sync()

	cfg.Logger = logger

	var opts []app.Option
	if *mockAudio {
		opts = append(opts, app.WithSink(audio.NewMockSink(0, 100, logger)))
	}

	a, err := app.New(cfg, opts...)
	if err != nil {
		logger.Error("startup failed", zap.Error(err),
			zap.String("hint", "install scripts/"+detector.ScriptName+" and its requirements"))
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("hand volume control starting",
		zap.Int("camera", cfg.CameraID),
		zap.Bool("mirror", cfg.Mirror))

	err = a.Run(ctx)
	switch {
	case err == nil:
		logger.Info("stopped")
	case errors.Is(err, app.ErrExitGesture):
		logger.Info("exiting on open-hand gesture")
	default:
		logger.Error("frame loop failed", zap.Error(err))
		return 1
	}
	return 0
}
