package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/app"
	"github.com/llehouerou/localplay/internal/config"
	"github.com/llehouerou/localplay/internal/engine"
	"github.com/llehouerou/localplay/internal/errmsg"
	"github.com/llehouerou/localplay/internal/mpris"
	"github.com/llehouerou/localplay/internal/notify"
	"github.com/llehouerou/localplay/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logFile, err := openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logrus.SetOutput(logFile)
	logrus.SetLevel(cfg.Level())

	// Audio libraries write to fd 2, which would corrupt the TUI.
	if err := stderr.Start(); err != nil {
		logrus.Warnf("Capturing stderr: %v", err)
	}
	defer stderr.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ask, prompts := app.NewAsker()
	e, err := engine.New(engine.Options{Config: cfg, Ask: ask})
	if err != nil {
		return err
	}
	defer e.Close()

	controls, err := mpris.New(e.Session)
	if err != nil {
		logrus.Warn(errmsg.Format(errmsg.OpMPRISStart, err))
	} else {
		defer controls.Close()
	}

	n := notify.Disabled()
	if cfg.NotificationsEnabled() {
		if n, err = notify.New(); err != nil {
			logrus.Warnf("Desktop notifications unavailable: %v", err)
			n = notify.Disabled()
		}
	}
	go notify.Forward(ctx, e.Session.Subscribe(), n)

	p := tea.NewProgram(
		app.New(ctx, e, prompts),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return nil
}

func openLog() (*os.File, error) {
	path, err := config.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
