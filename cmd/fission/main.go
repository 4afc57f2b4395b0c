package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mkaza/fission/audio"
	"github.com/mkaza/fission/editor"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/input"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
	"github.com/mkaza/fission/progress"
	"github.com/mkaza/fission/render"
	"github.com/mkaza/fission/system"
)

var (
	configFlag = flag.String("config", "config.toml", "path to the config file")
	levelsFlag = flag.String("levels", "", "override the levels directory")
	debugFlag  = flag.Bool("debug", false, "write a debug log under logs/")
	muteFlag   = flag.Bool("mute", false, "start muted")
)

func main() {
	flag.Parse()

	cfg, err := engine.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *levelsFlag != "" {
		cfg.LevelsDir = *levelsFlag
	}
	if *debugFlag {
		cfg.Debug = true
	}

	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	// A broken default set is fatal: the campaign chain depends on it.
	lib, err := level.LoadLibrary(cfg.LevelsDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Restore the terminal before the trace prints, or the report is
	// unreadable.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "fission crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	ctx := engine.NewGameContext(screen, engine.SystemClock{})
	ctx.Res.Config = cfg
	ctx.Res.Library = lib

	// The game runs silent if the device refuses to open.
	eng := audio.NewEngine(cfg.Volume)
	if err := eng.Start(); err != nil {
		log.Printf("audio unavailable: %v", err)
	} else {
		ctx.Res.Audio = eng
		defer eng.Stop()
	}
	if (cfg.StartMuted || *muteFlag) && !ctx.Res.Audio.Muted() {
		ctx.Res.Audio.ToggleMute()
	}

	// Likewise a broken progress database disables records, not play.
	store, err := progress.Open(cfg.ProgressPath)
	if err != nil {
		log.Printf("progress unavailable: %v", err)
		store = nil
	} else {
		ctx.Res.Progress = store
		defer store.Close()
	}
	var recorder system.ProgressRecorder
	if store != nil {
		recorder = store
	}

	sess := editor.NewSession()

	sched := engine.NewScheduler(ctx.Res.Metrics)
	for _, sys := range []engine.System{
		system.NewStepSystem(ctx),
		system.NewClassifierSystem(ctx),
		system.NewImmunitySystem(ctx),
		system.NewDecomposeSystem(ctx),
		system.NewLaunchSystem(ctx),
		system.NewArrowSystem(ctx),
		system.NewPreviewSystem(ctx, sess),
		system.NewCueSystem(ctx),
		system.NewFlowSystem(ctx, sess),
		system.NewProgressionSystem(ctx, recorder),
		system.NewDiagnosticsSystem(ctx),
	} {
		sched.Add(ctx.Res.Metrics, sys)
	}

	renderer := render.NewRenderer(ctx, sess)
	handler := input.NewHandler(ctx, sess, input.NewMachine())

	run(ctx, sched, renderer, handler)
}

// run is the single simulation goroutine. Terminal events and the
// tick both land in one select, so systems, the session, and the
// library never need locking against input.
func run(ctx *engine.GameContext, sched *engine.Scheduler, renderer *render.Renderer, handler *input.Handler) {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go ctx.Screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(parameter.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !handler.HandleEvent(ev) {
				close(quit)
				return
			}
		case <-ticker.C:
			ctx.Res.Time.Update(ctx.Clock.Now())
			// Paused keeps rendering so the menu and overlay stay
			// live, but no system runs.
			if !ctx.State.Paused() {
				sched.Update(ctx.Res.Time.Delta)
			}
			renderer.Frame()
		}
	}
}
