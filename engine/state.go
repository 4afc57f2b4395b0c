package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
)

// Screen is the coarse UI mode.
type Screen uint8

const (
	ScreenSplash Screen = iota
	ScreenTitle
	ScreenLevelSelect
	ScreenLoading
	ScreenGameplay
	ScreenEditor
	ScreenEnd
)

func (s Screen) String() string {
	switch s {
	case ScreenSplash:
		return "splash"
	case ScreenTitle:
		return "title"
	case ScreenLevelSelect:
		return "select"
	case ScreenLoading:
		return "loading"
	case ScreenGameplay:
		return "gameplay"
	case ScreenEditor:
		return "editor"
	case ScreenEnd:
		return "end"
	}
	return "unknown"
}

// LevelPhase tracks the running attempt. Idle means nothing is
// spawned; Ended means the completion delay has run out and the
// arena is waiting for teardown.
type LevelPhase uint8

const (
	PhaseIdle LevelPhase = iota
	PhasePlaying
	PhaseEnded
)

// Origin records how the attempt was started, which decides where to
// go when it ends.
type Origin uint8

const (
	OriginNone Origin = iota
	OriginNumbered
	OriginCustom
	OriginEditor
)

// AttemptSnapshot is a read-only copy of the level section for HUD
// and menus.
type AttemptSnapshot struct {
	Phase        LevelPhase
	Origin       Origin
	Number       int
	Key          string
	Title        string
	Count        int
	DelayStarted bool
	Elapsed      time.Duration
}

// GameState owns the screen machine and the current level attempt.
// The progression system is the only writer of the attempt section;
// everything else reads snapshots.
type GameState struct {
	mu          sync.Mutex
	screen      Screen
	screenSince time.Time
	paused      atomic.Bool

	phase         LevelPhase
	origin        Origin
	number        int
	key           string
	title         string
	retained      *level.Data
	count         int
	delayStarted  bool
	delayDeadline time.Time
	startedAt     time.Time
	endedAt       time.Time
}

func NewGameState(now time.Time) *GameState {
	return &GameState{screen: ScreenSplash, screenSince: now}
}

// CanTransition encodes the legal screen graph.
func (g *GameState) CanTransition(from, to Screen) bool {
	valid := map[Screen][]Screen{
		ScreenSplash:      {ScreenTitle},
		ScreenTitle:       {ScreenLevelSelect, ScreenEditor},
		ScreenLevelSelect: {ScreenLoading, ScreenTitle},
		ScreenLoading:     {ScreenGameplay, ScreenLevelSelect},
		ScreenGameplay:    {ScreenLoading, ScreenLevelSelect, ScreenEditor, ScreenEnd, ScreenTitle},
		ScreenEditor:      {ScreenLoading, ScreenTitle},
		ScreenEnd:         {ScreenTitle},
	}
	for _, s := range valid[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionScreen moves to a new screen if the graph allows it.
// Leaving gameplay always unpauses.
func (g *GameState) TransitionScreen(to Screen, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.CanTransition(g.screen, to) {
		return false
	}
	g.screen = to
	g.screenSince = now
	if to != ScreenGameplay {
		g.paused.Store(false)
	}
	return true
}

func (g *GameState) Screen() Screen {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.screen
}

// ScreenSince reports when the current screen was entered, which
// drives splash and loading timers.
func (g *GameState) ScreenSince() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.screenSince
}

// TogglePause flips the pause flag during gameplay and reports the
// new value.
func (g *GameState) TogglePause() bool {
	if g.Screen() != ScreenGameplay {
		return g.paused.Load()
	}
	for {
		old := g.paused.Load()
		if g.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (g *GameState) Paused() bool { return g.paused.Load() }

// BeginAttempt installs a fresh attempt. The snapshot is retained
// as-is; callers pass a clone if the source keeps mutating.
func (g *GameState) BeginAttempt(snap *level.Data, origin Origin, number int, key string, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.phase = PhasePlaying
	g.origin = origin
	g.number = number
	g.key = key
	g.title = snap.Name
	g.retained = snap
	g.count = 0
	g.delayStarted = false
	g.delayDeadline = time.Time{}
	g.startedAt = now
	g.endedAt = time.Time{}
}

// RetainedLevel is the spawn snapshot restarts replay from.
func (g *GameState) RetainedLevel() *level.Data {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.retained
}

// ApplyPopulationDelta folds one tick's summed spawn and removal
// counts into the population. It reports the new count and whether
// this application crossed to zero, which can happen at most once
// per attempt. The count never goes negative; an excess removal is
// clamped.
func (g *GameState) ApplyPopulationDelta(delta int, now time.Time) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhasePlaying {
		return g.count, false
	}
	prev := g.count
	g.count += delta
	if g.count < 0 {
		g.count = 0
	}
	crossed := prev > 0 && g.count == 0 && !g.delayStarted
	if crossed {
		g.delayStarted = true
		g.delayDeadline = now.Add(parameter.CompletionDelay)
	}
	return g.count, crossed
}

// CompletionDue reports whether the post-clear delay has elapsed.
func (g *GameState) CompletionDue(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase == PhasePlaying && g.delayStarted && !now.Before(g.delayDeadline)
}

// EndAttempt moves Playing to Ended exactly once.
func (g *GameState) EndAttempt(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhasePlaying {
		return false
	}
	g.phase = PhaseEnded
	g.endedAt = now
	return true
}

// ClearAttempt returns the level section to Idle after teardown.
func (g *GameState) ClearAttempt() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.phase = PhaseIdle
	g.origin = OriginNone
	g.retained = nil
	g.count = 0
	g.delayStarted = false
}

// Attempt returns a read-only copy of the level section.
func (g *GameState) Attempt(now time.Time) AttemptSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	elapsed := time.Duration(0)
	if g.phase != PhaseIdle {
		end := now
		if !g.endedAt.IsZero() {
			end = g.endedAt
		}
		elapsed = end.Sub(g.startedAt)
	}
	return AttemptSnapshot{
		Phase:        g.phase,
		Origin:       g.origin,
		Number:       g.number,
		Key:          g.key,
		Title:        g.title,
		Count:        g.count,
		DelayStarted: g.delayStarted,
		Elapsed:      elapsed,
	}
}
