package system

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
)

// ProgressRecorder persists attempt statistics. A nil recorder
// disables persistence without disabling play.
type ProgressRecorder interface {
	RecordAttempt(key, title string, now time.Time) error
	RecordCompletion(key, title string, elapsed time.Duration, now time.Time) error
}

// ProgressionSystem owns the attempt lifecycle: it is the only writer
// of the population count, it runs the completion delay, advances
// numbered stages, returns editor attempts to the editor, and handles
// kill, restart, and abandon.
//
// The tick's spawn and removal events are summed and applied in a
// single step, so the zero crossing is evaluated exactly once however
// many splits landed in the frame.
type ProgressionSystem struct {
	ctx   *engine.GameContext
	store ProgressRecorder

	spawned, removed int
	killed           bool
	restart          bool
	abandon          bool
	starts           []event.StartStage
	tests            []*level.Data
	lastRestart      time.Time

	clears *atomic.Int64
	kills  *atomic.Int64
}

func NewProgressionSystem(ctx *engine.GameContext, store ProgressRecorder) engine.System {
	s := &ProgressionSystem{
		ctx:    ctx,
		store:  store,
		clears: ctx.Res.Metrics.Ints.Get("stages.cleared"),
		kills:  ctx.Res.Metrics.Ints.Get("player.kills"),
	}
	w := ctx.World
	event.Spawns.Subscribe(w, func(_ donburi.World, e event.InstanceSpawned) { s.spawned += e.N })
	event.Removals.Subscribe(w, func(_ donburi.World, e event.InstanceRemoved) { s.removed += e.N })
	event.PlayerKills.Subscribe(w, func(_ donburi.World, e event.PlayerKilled) { s.killed = true })
	event.Restarts.Subscribe(w, func(_ donburi.World, e event.Restart) { s.restart = true })
	event.Abandons.Subscribe(w, func(_ donburi.World, e event.Abandon) { s.abandon = true })
	event.StageStarts.Subscribe(w, func(_ donburi.World, e event.StartStage) { s.starts = append(s.starts, e) })
	event.PlayTests.Subscribe(w, func(_ donburi.World, e event.PlayTest) { s.tests = append(s.tests, e.Data) })
	return s
}

func (s *ProgressionSystem) Name() string  { return "progression" }
func (s *ProgressionSystem) Priority() int { return parameter.PriorityProgression }

func (s *ProgressionSystem) Update(dt time.Duration) {
	w := s.ctx.World
	now := s.ctx.Clock.Now()

	event.Spawns.ProcessEvents(w)
	event.Removals.ProcessEvents(w)
	event.PlayerKills.ProcessEvents(w)
	event.Restarts.ProcessEvents(w)
	event.Abandons.ProcessEvents(w)
	event.StageStarts.ProcessEvents(w)
	event.PlayTests.ProcessEvents(w)

	// Deltas first: they belong to the attempt that produced them,
	// before any command below replaces it.
	if s.spawned != 0 || s.removed != 0 {
		delta := s.spawned - s.removed
		s.spawned, s.removed = 0, 0
		s.ctx.State.ApplyPopulationDelta(delta, now)
	}

	if s.killed {
		s.killed = false
		s.handleKill()
	}

	if s.ctx.State.CompletionDue(now) && s.ctx.State.EndAttempt(now) {
		s.finish(now)
	}

	if s.abandon {
		s.abandon = false
		s.handleAbandon(now)
	}
	if s.restart {
		s.restart = false
		s.handleRestart(now)
	}
	s.handleQueuedStarts(now)
}

// handleKill removes the player and resets time handling. The level
// keeps running; remaining particles drift on and the completion
// delay is untouched.
func (s *ProgressionSystem) handleKill() {
	if DestroyPlayer(s.ctx) {
		s.kills.Add(1)
		event.Sounds.Publish(s.ctx.World, event.Sound{ID: event.SoundKill})
	}
	s.ctx.Res.Scale.ClearOverride()
	s.ctx.Res.Scale.SetAutomatic(parameter.NormalTimeScale)
	s.ctx.Res.Drag = engine.DragState{}
}

func (s *ProgressionSystem) handleAbandon(now time.Time) {
	state := s.ctx.State
	att := state.Attempt(now)
	if att.Phase == engine.PhaseIdle {
		return
	}
	TeardownStage(s.ctx)
	state.ClearAttempt()
	s.resetScale()
	if att.Origin == engine.OriginEditor {
		state.TransitionScreen(engine.ScreenEditor, now)
		return
	}
	state.TransitionScreen(engine.ScreenLevelSelect, now)
}

func (s *ProgressionSystem) handleRestart(now time.Time) {
	state := s.ctx.State
	att := state.Attempt(now)
	if state.Screen() != engine.ScreenGameplay || att.Phase != engine.PhasePlaying {
		return
	}
	if !s.lastRestart.IsZero() && now.Sub(s.lastRestart) < parameter.RestartHoldOff {
		return
	}
	snap := state.RetainedLevel()
	if snap == nil {
		return
	}
	s.lastRestart = now
	TeardownStage(s.ctx)
	state.BeginAttempt(snap, att.Origin, att.Number, att.Key, now)
	SpawnStage(s.ctx, snap)
	s.resetScale()
	if att.Origin != engine.OriginEditor {
		s.recordAttempt(att.Key, snap.Name, now)
	}
}

// handleQueuedStarts begins the most recent requested stage once the
// loading screen has been up long enough to register.
func (s *ProgressionSystem) handleQueuedStarts(now time.Time) {
	if len(s.starts) == 0 && len(s.tests) == 0 {
		return
	}
	state := s.ctx.State
	if state.Screen() == engine.ScreenLoading &&
		now.Sub(state.ScreenSince()) < parameter.LoadingMinDuration {
		return
	}

	if n := len(s.tests); n > 0 {
		data := s.tests[n-1]
		s.starts = s.starts[:0]
		s.tests = s.tests[:0]
		s.beginAttempt(data.Clone(), engine.OriginEditor, 0, "", now)
		return
	}

	start := s.starts[len(s.starts)-1]
	s.starts = s.starts[:0]
	lib := s.ctx.Res.Library
	if lib == nil {
		return
	}
	var stage *level.Stage
	if start.Custom != "" {
		if st, ok := lib.CustomByName(start.Custom); ok {
			stage = st
		}
	} else if st, ok := lib.ByNumber(start.Number); ok {
		stage = st
	}
	if stage == nil {
		log.Printf("requested stage not in library: %+v", start)
		state.TransitionScreen(engine.ScreenLevelSelect, now)
		return
	}
	origin := engine.OriginNumbered
	if stage.Custom {
		origin = engine.OriginCustom
	}
	s.beginAttempt(stage.Data.Clone(), origin, stage.Number, stage.Key(), now)
}

func (s *ProgressionSystem) beginAttempt(data *level.Data, origin engine.Origin, number int, key string, now time.Time) {
	state := s.ctx.State
	TeardownStage(s.ctx)
	state.BeginAttempt(data, origin, number, key, now)
	SpawnStage(s.ctx, data)
	s.resetScale()
	if origin != engine.OriginEditor {
		s.recordAttempt(key, data.Name, now)
	}
	state.TransitionScreen(engine.ScreenGameplay, now)
}

// finish runs after the completion delay. Where to go depends on how
// the attempt started.
func (s *ProgressionSystem) finish(now time.Time) {
	state := s.ctx.State
	att := state.Attempt(now)
	s.clears.Add(1)

	switch att.Origin {
	case engine.OriginEditor:
		event.Clears.Publish(s.ctx.World, event.Cleared{})
		TeardownStage(s.ctx)
		state.ClearAttempt()
		s.resetScale()
		state.TransitionScreen(engine.ScreenEditor, now)

	case engine.OriginCustom:
		s.recordCompletion(att, now)
		event.Clears.Publish(s.ctx.World, event.Cleared{})
		TeardownStage(s.ctx)
		state.ClearAttempt()
		s.resetScale()
		state.TransitionScreen(engine.ScreenLevelSelect, now)

	default:
		s.recordCompletion(att, now)
		next, ok := s.nextStage(att.Number)
		if !ok {
			event.Clears.Publish(s.ctx.World, event.Cleared{Final: true})
			TeardownStage(s.ctx)
			state.ClearAttempt()
			s.resetScale()
			state.TransitionScreen(engine.ScreenEnd, now)
			return
		}
		event.Clears.Publish(s.ctx.World, event.Cleared{})
		state.TransitionScreen(engine.ScreenLoading, now)
		s.beginAttempt(next.Data.Clone(), engine.OriginNumbered, next.Number, next.Key(), now)
	}
}

func (s *ProgressionSystem) nextStage(n int) (*level.Stage, bool) {
	if s.ctx.Res.Library == nil {
		return nil, false
	}
	return s.ctx.Res.Library.Next(n)
}

func (s *ProgressionSystem) resetScale() {
	s.ctx.Res.Scale.ClearOverride()
	s.ctx.Res.Scale.SetAutomatic(parameter.NormalTimeScale)
}

func (s *ProgressionSystem) recordAttempt(key, title string, now time.Time) {
	if s.store == nil || key == "" {
		return
	}
	if err := s.store.RecordAttempt(key, title, now); err != nil {
		log.Printf("record attempt: %v", err)
	}
}

func (s *ProgressionSystem) recordCompletion(att engine.AttemptSnapshot, now time.Time) {
	if s.store == nil || att.Key == "" {
		return
	}
	if err := s.store.RecordCompletion(att.Key, att.Title, att.Elapsed, now); err != nil {
		log.Printf("record completion: %v", err)
	}
}
