package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/junsooki/photoframe/internal/config"
	"github.com/junsooki/photoframe/internal/decoder"
	"github.com/junsooki/photoframe/internal/display"
	"github.com/junsooki/photoframe/internal/fetcher"
	"github.com/junsooki/photoframe/internal/frame"
	"github.com/junsooki/photoframe/internal/logging"
	"github.com/junsooki/photoframe/internal/mailbox"
)

func main() {
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal("config", "err", err)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("config", "err", err)
	}
	logger := logging.New(os.Stdout, level)
	bg, _ := cfg.BackgroundColor()

	logger.Info("photoframe starting")
	logger.Info("config",
		"url", cfg.URL,
		"timeout", cfg.Timeout,
		"interval", cfg.Interval,
		"fps", cfg.FPS,
		"background", cfg.Background,
		"fullscreen", cfg.Fullscreen)

	box := mailbox.New()

	logger.Info("initializing display")
	disp := display.NewEbitenDisplay(display.Options{
		Title:      "Photo Frame",
		Fullscreen: cfg.Fullscreen,
		Background: bg,
		FPS:        cfg.FPS,
	})
	driver := frame.New(box, decoder.NewImageDecoder(), disp, logger)

	// The fetcher is never waited for; cancelling only stops it early.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := fetcher.New(fetcher.Options{
		URL:      cfg.URL,
		Timeout:  cfg.Timeout,
		Interval: cfg.Interval,
	}, box, logger)
	go f.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig)
		disp.Close()
	}()

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	logger.Info("entering main display loop")
	if err := disp.Run(driver.Tick); err != nil {
		logger.Fatal("display", "err", err)
	}

	st := box.Stats()
	logger.Info("display closed", "photos", st.Consumed, "dropped", st.Dropped)
}
