package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/engine"
	"github.com/llehouerou/localplay/internal/playback"
)

var errQuit = errors.New("quit")

type command struct {
	name  string
	args  string
	help  string
	run   func(s *shell, args []string) error
	alias []string
}

// commands is filled in init because help lists it.
var commands []command

func init() {
	commands = []command{
		{name: "load-catalog", help: "Read the track list", run: (*shell).loadCatalog, alias: []string{"rescan"}},
		{name: "list", help: "Show the track list", run: (*shell).list, alias: []string{"ls"}},
		{name: "play", args: "<index>", help: "Play a track", run: (*shell).play},
		{name: "next", help: "Next track", run: (*shell).next, alias: []string{"n"}},
		{name: "previous", help: "Previous track", run: (*shell).previous, alias: []string{"prev", "p"}},
		{name: "pause", help: "Toggle pause", run: (*shell).pause},
		{name: "seek", args: "<m:ss|ms>", help: "Seek in the current track", run: (*shell).seek},
		{name: "status", help: "Show what is playing", run: (*shell).status, alias: []string{"st"}},
		{name: "background", help: "Pause and stop position updates", run: (*shell).background},
		{name: "foreground", help: "Resume position updates", run: (*shell).foreground},
		{name: "help", help: "Show this help", run: (*shell).help, alias: []string{"?"}},
		{name: "quit", help: "Exit", run: func(*shell, []string) error { return errQuit }, alias: []string{"exit", "q"}},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, a := range c.alias {
			if a == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// shell runs one REPL line at a time against an engine.
type shell struct {
	ctx    context.Context
	engine *engine.Engine
	out    io.Writer
}

// exec runs line. It returns errQuit when the user asked to leave.
func (s *shell) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	c, ok := lookup(strings.ToLower(fields[0]))
	if !ok {
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
	return c.run(s, fields[1:])
}

func (s *shell) loadCatalog([]string) error {
	c := s.engine.LoadCatalog(s.ctx)
	if n := c.Notice(); n != "" {
		fmt.Fprintln(s.out, n)
	}
	if c.OnlySamples() {
		fmt.Fprintln(s.out, catalog.NoSongsMessage)
	}
	fmt.Fprintf(s.out, "%s tracks\n", humanize.Comma(int64(c.Len())))
	return nil
}

func (s *shell) list([]string) error {
	c := s.engine.Catalog()
	if c == nil {
		return errors.New("no catalog, run load-catalog first")
	}
	current := -1
	if st := s.engine.Session.Status(); st.State != playback.Idle {
		current = st.Index
	}
	for i, t := range c.Tracks() {
		marker := " "
		if i == current {
			marker = ">"
		}
		fmt.Fprintf(s.out, "%s %3d  %s", marker, i, t.DisplayTitle())
		if t.Artist != "" {
			fmt.Fprintf(s.out, " - %s", t.Artist)
		}
		if t.Duration > 0 {
			fmt.Fprintf(s.out, " (%s)", catalog.FormatMMSS(t.Duration))
		}
		fmt.Fprintln(s.out)
	}
	return nil
}

func (s *shell) play(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: play <index>")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad index %q", args[0])
	}
	return s.engine.Play(s.ctx, i)
}

func (s *shell) next([]string) error {
	b, err := s.engine.Session.Next()
	s.boundary(b)
	return err
}

func (s *shell) previous([]string) error {
	b, err := s.engine.Session.Previous()
	s.boundary(b)
	return err
}

func (s *shell) boundary(b playback.Boundary) {
	if b != playback.NoBoundary {
		fmt.Fprintln(s.out, b.Message())
	}
}

func (s *shell) pause([]string) error {
	fmt.Fprintln(s.out, s.engine.Session.TogglePause())
	return nil
}

func (s *shell) seek(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: seek <m:ss|ms>")
	}
	pos, err := catalog.ParseDuration(args[0])
	if err != nil {
		return err
	}
	return s.engine.Session.SeekTo(pos)
}

func (s *shell) status([]string) error {
	fmt.Fprintln(s.out, formatStatus(s.engine.Session.Status()))
	return nil
}

func (s *shell) background([]string) error {
	s.engine.Background()
	return nil
}

func (s *shell) foreground([]string) error {
	s.engine.Foreground()
	return nil
}

func (s *shell) help([]string) error {
	for _, c := range commands {
		usage := strings.TrimSpace(c.name + " " + c.args)
		fmt.Fprintf(s.out, "  %-22s %s\n", usage, c.help)
	}
	return nil
}

func formatStatus(st playback.Status) string {
	if st.Index < 0 {
		return st.State.String()
	}
	return fmt.Sprintf("%s %d/%d %s %s / %s",
		st.State, st.Index+1, st.Total, st.Track.DisplayTitle(),
		catalog.FormatMMSS(st.Position), catalog.FormatMMSS(st.Duration))
}
