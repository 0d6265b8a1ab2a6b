package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/soar/stickprofile/internal/config"
	"github.com/soar/stickprofile/internal/gamepad"
	"github.com/soar/stickprofile/internal/graph"
	"github.com/soar/stickprofile/internal/hub"
	"github.com/soar/stickprofile/internal/router"
	"github.com/soar/stickprofile/internal/screen"
	"github.com/soar/stickprofile/internal/server"
	"github.com/soar/stickprofile/internal/store"
	"github.com/soar/stickprofile/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.Flags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logrus.SetLevel(cfg.Level())

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	reader := gamepad.NewReader()
	remoteKeys := &router.Latch{}

	// Create and start hub
	h := hub.NewHub()
	go h.Run()

	views := make(chan screen.View, 8)
	broadcaster := hub.NewBroadcaster(h, views)
	go broadcaster.Run()

	srv := server.New(h, broadcaster, remoteKeys, getFrontendFS(), cfg.Listen)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	logrus.Infof("StickProfile started: %s", tray.ViewURL(cfg.Listen))

	scr := screen.New(reader, store.NewFilePersistence(cfg.ProfilesFile), screen.Options{
		Types:      cfg.Types(),
		Resolution: cfg.Graph.Resolution,
		Router:     cfg.Router(),
	})
	size := graph.Vec{X: cfg.Graph.Width, Y: cfg.Graph.Height}
	entered := false

	// One poll-route-render cycle, on the SDL thread.
	frame := func(r *gamepad.Reader) bool {
		if !entered {
			scr.EnterScreen()
			entered = true
		}
		raw, remote := r.PollRaw(), remoteKeys.Snapshot()
		scr.HandleFrameInput(raw, r.Nav().Merge(remote))
		// Without a joystick the router emits nothing; a remote Back still
		// leaves the screen.
		if len(raw) == 0 && remote[router.Back] {
			if err := scr.Leave(); err != nil {
				logrus.WithError(err).Error("saving stick profiles failed")
			}
		}

		select {
		case views <- scr.View(cfg.Graph.Alpha, graph.Vec{}, size):
		default:
			// Drop the frame rather than stall the loop
		}
		return !scr.Done()
	}

	readerDone := make(chan error, 1)
	go func() {
		readerDone <- reader.Run(ctx, frame)
	}()

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})
	var t *tray.Tray
	if cfg.Tray && runtime.GOOS == "windows" {
		t = tray.New(cfg.Listen, func() {
			close(shutdownRequested)
		})
		go t.Run(nil)
	} else {
		logrus.Info("Press Ctrl+C to exit")
	}

	// Wait for shutdown signal, tray request, server error or the player
	// leaving the screen
	var runErr error
	readerFinished := false
	select {
	case <-sigCh:
		logrus.Info("shutting down...")
	case <-shutdownRequested:
		logrus.Info("shutdown requested from tray")
	case err := <-serverErrCh:
		logrus.WithError(err).Error("HTTP server error")
	case runErr = <-readerDone:
		readerFinished = true
	}
	cancel()
	if !readerFinished {
		runErr = <-readerDone
	}
	if runErr != nil {
		logrus.WithError(runErr).Error("joystick reader failed")
	}

	// The frame loop has stopped, so the screen can be closed from here.
	if err := scr.Leave(); err != nil {
		logrus.WithError(err).Error("saving stick profiles failed")
	}
	close(views)

	if t != nil {
		t.Quit()
	}

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown error")
	}

	logrus.Info("StickProfile stopped")
}
