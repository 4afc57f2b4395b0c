package engine

import (
	"github.com/gdamore/tcell/v2"
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/physics"
	"github.com/mkaza/fission/status"
)

// GameContext aggregates everything a system operates on. Systems
// receive it at construction and keep it.
type GameContext struct {
	Screen  tcell.Screen
	World   donburi.World
	Physics *physics.World
	State   *GameState
	Clock   Clock
	Res     *Resources
}

func NewGameContext(screen tcell.Screen, clock Clock) *GameContext {
	w, h := screen.Size()
	ctx := &GameContext{
		Screen:  screen,
		World:   donburi.NewWorld(),
		Physics: physics.NewWorld(),
		State:   NewGameState(clock.Now()),
		Clock:   clock,
		Res: &Resources{
			Config:  DefaultConfig(),
			Scale:   NewTimeScale(),
			Metrics: status.NewRegistry(),
			Audio:   NullAudio{},
			View:    NewView(w, h),
		},
	}
	return ctx
}

// Resize rebuilds the projection after a terminal size change.
func (c *GameContext) Resize(w, h int) {
	c.Res.View = NewView(w, h)
}
