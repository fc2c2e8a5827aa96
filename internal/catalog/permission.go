package catalog

import (
	"context"
	"sync"
)

// DeniedMessage is shown when library access is refused.
const DeniedMessage = "Storage permission denied. Only sample songs will be available."

// RationaleMessage explains why access to the library is requested.
const RationaleMessage = "Storage permission is needed to access your music files"

// Gate decides whether the library directories may be read.
type Gate interface {
	// Granted reports the current decision without prompting.
	Granted() bool
	// Request asks for access if needed and reports the outcome.
	Request(ctx context.Context) bool
}

type staticGate bool

func (g staticGate) Granted() bool                { return bool(g) }
func (g staticGate) Request(context.Context) bool { return bool(g) }

// Allow returns a gate that always grants access.
func Allow() Gate { return staticGate(true) }

// Deny returns a gate that always refuses access.
func Deny() Gate { return staticGate(false) }

// DirGate grants access when every directory exists and can be listed by
// the current user. It cannot be changed by asking.
type DirGate struct {
	Dirs []string
}

func (g DirGate) Granted() bool {
	for _, d := range g.Dirs {
		if checkReadableDir(d) != nil {
			return false
		}
	}
	return true
}

func (g DirGate) Request(context.Context) bool { return g.Granted() }

// Asker poses a yes/no question to the user.
type Asker func(ctx context.Context, question string) bool

// PromptGate asks the user for consent once, then defers to Base.
type PromptGate struct {
	Base Gate
	Ask  Asker

	mu      sync.Mutex
	asked   bool
	consent bool
}

func NewPromptGate(base Gate, ask Asker) *PromptGate {
	return &PromptGate{Base: base, Ask: ask}
}

func (g *PromptGate) Granted() bool {
	g.mu.Lock()
	consent := g.consent
	g.mu.Unlock()
	return consent && g.Base.Granted()
}

func (g *PromptGate) Request(ctx context.Context) bool {
	g.mu.Lock()
	if !g.asked {
		g.asked = true
		g.consent = g.Ask(ctx, RationaleMessage+". Allow access?")
	}
	consent := g.consent
	g.mu.Unlock()
	return consent && g.Base.Request(ctx)
}
