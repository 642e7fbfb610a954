// Command neocompd is the compositor daemon: it wires together the X
// ingestion pipeline, the render backend, and the session tick driver, and
// runs until interrupted. Flag parsing and logger construction here are the
// "production build" half of the boundaries internal/config and
// internal/render draw around file parsing and GLX context creation.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/neocomp/neocomp/internal/config"
	"github.com/neocomp/neocomp/internal/session"
	"github.com/neocomp/neocomp/internal/xevent"
	"github.com/rs/zerolog"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "neocompd:", err)
		os.Exit(1)
	}
}

func run() error {
	display := flag.String("display", "", "X display name (empty uses $DISPLAY)")
	blur := flag.Bool("blur-background", false, "enable behind-window blur")
	blurLevel := flag.Int("blur-level", 2, "dual-Kawase blur pass count")
	activeOpacity := flag.Int("active-opacity", 0, "opacity percent for the focused window, 0 disables the override")
	inactiveOpacity := flag.Int("inactive-opacity", 100, "opacity percent for unfocused windows")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	cfg := config.Default()
	cfg.BlurBackground = *blur
	cfg.BlurLevel = *blurLevel
	cfg.ActiveOpacity = *activeOpacity
	cfg.InactiveOpacity = *inactiveOpacity

	ing, err := xevent.New(*display, log)
	if err != nil {
		return fmt.Errorf("connect to X display: %w", err)
	}
	defer ing.Close()

	w, h := ing.ScreenSize()
	backend := newEbitenBackend(w, h)
	defer backend.Close()

	sess, err := session.New(cfg, ing, backend, log)
	if err != nil {
		return fmt.Errorf("build session: %w", err)
	}

	stop := make(chan struct{})
	var stopOnce sync.Once
	requestStop := func() { stopOnce.Do(func() { close(stop) }) }

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	runErr := make(chan error, 1)
	go func() { runErr <- sess.Run(stop) }()

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("neocompd")
	shell := &gameShell{backend: backend, w: w, h: h}

	go func() {
		<-sig
		requestStop()
	}()

	runGameErr := ebiten.RunGame(shell)
	requestStop()
	if err := <-runErr; err != nil {
		return fmt.Errorf("run session: %w", err)
	}
	if runGameErr != nil {
		return fmt.Errorf("run display loop: %w", runGameErr)
	}
	return nil
}
