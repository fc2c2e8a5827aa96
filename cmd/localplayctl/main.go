// Command localplayctl drives a playback session from a line prompt.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/config"
	"github.com/llehouerou/localplay/internal/engine"
	"github.com/llehouerou/localplay/internal/errmsg"
	"github.com/llehouerou/localplay/internal/playback"
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
	logrus.SetLevel(cfg.Level())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "localplay> ",
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	logrus.SetOutput(rl.Stderr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e, err := engine.New(engine.Options{Config: cfg, Ask: askWith(rl)})
	if err != nil {
		return err
	}
	defer e.Close()

	go printEvents(ctx, e.Session.Subscribe(), rl.Stdout())

	sh := &shell{ctx: ctx, engine: e, out: rl.Stdout()}
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return nil
		}
		switch err := sh.exec(line); {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			fmt.Fprintf(rl.Stdout(), "error: %v\n", err)
		}
	}
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, c := range commands {
		items = append(items, readline.PcItem(c.name))
	}
	return readline.NewPrefixCompleter(items...)
}

// askWith answers permission questions from the same prompt. Catalog
// loads run on the REPL goroutine, so the main loop is not reading.
func askWith(rl *readline.Instance) func(context.Context, string) bool {
	return func(_ context.Context, question string) bool {
		rl.SetPrompt(question + " [y/N]: ")
		defer rl.SetPrompt("localplay> ")
		line, err := rl.Readline()
		if err != nil {
			return false
		}
		return parseYes(line)
	}
}

func parseYes(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// printEvents reports what the session does on its own: auto-advance,
// reaching the end, and failures.
func printEvents(ctx context.Context, sub *playback.Subscription, out io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			fmt.Fprintf(out, "now playing %d/%d: %s\n", e.Index+1, e.Total, e.Track.DisplayTitle())
		case e := <-sub.Boundary:
			fmt.Fprintln(out, e.Message)
		case e := <-sub.Error:
			fmt.Fprintln(out, e.Message())
		case <-sub.StateChanged:
		case <-sub.PositionChanged:
		}
	}
}
