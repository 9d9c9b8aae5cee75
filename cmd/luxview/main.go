// Command luxview is a terminal demo: it builds a one-room level's
// collision geometry (C3), traces a single light against it every frame
// (C4), and lets an embedded Yang script drive that light's position, tint
// and cone angle (C5-C8). It plays the role of a minimal end-to-end harness
// over the library, the way the teacher's own root main.go demos tcell
// directly rather than through an engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/luxengine/config"
	"github.com/lixenwraith/luxengine/internal/logx"
)

func main() {
	configPath := flag.String("config", "", "path to a game.toml config file (defaults baked in if omitted)")
	flag.Parse()

	log := logx.Default()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "luxview: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	r, ok := loadRig(log, cfg)
	if !ok {
		fmt.Fprintln(os.Stderr, "luxview: no usable light-rig script")
		os.Exit(1)
	}

	game, err := newGame(cfg, r, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luxview: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}

// loadRig tries cfg.Yang.ScriptDir/rig.yang first, falling back to the
// embedded defaultRig on any read or compile failure (spec.md §7's "never
// fatal" stance extended to the demo's own asset loading).
func loadRig(log *logx.Logger, cfg *config.Config) (*rig, bool) {
	path := filepath.Join(cfg.Yang.ScriptDir, "rig.yang")
	if data, err := os.ReadFile(path); err == nil {
		if r, ok := newRig(log, path, string(data)); ok {
			log.Infof("loaded light rig from %s", path)
			return r, true
		}
		log.Warnf("falling back to the built-in light rig")
	}
	return newRig(log, "builtin-rig", defaultRig)
}

// game owns the terminal and the per-frame scene/rig state, mirroring the
// teacher's own Game type in root main.go: a screen, a run loop driven by a
// ticker and a goroutine-fed event channel, and a cleanup method.
type game struct {
	screen tcell.Screen
	log    *logx.Logger

	scene *scene
	rig   *rig
}

func newGame(cfg *config.Config, r *rig, log *logx.Logger) (*game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()

	return &game{
		screen: screen,
		log:    log,
		scene:  newScene(cfg),
		rig:    r,
	}, nil
}

func (g *game) cleanup() {
	g.screen.Fini()
}

func (g *game) run() {
	ticker := time.NewTicker(33 * time.Millisecond) // ~30 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.rig.tick()
			g.draw()
		}
	}
}

func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		switch ev.Key() {
		case tcell.KeyUp:
			g.scene.window.Shift(0, -1)
		case tcell.KeyDown:
			g.scene.window.Shift(0, 1)
		case tcell.KeyLeft:
			g.scene.window.Shift(-1, 0)
		case tcell.KeyRight:
			g.scene.window.Shift(1, 0)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *game) draw() {
	g.screen.Clear()

	paintWalls(g.screen, g.scene)

	st := g.rig.state()
	t := g.scene.trace(st)
	paintLight(g.screen, t, g.scene.fullRange+g.scene.falloffRange)

	_, h := g.screen.Size()
	paintStatus(g.screen, h-1, fmt.Sprintf("luxview  window center=%v  q/esc quits, arrows move the active window", g.scene.window.Center()))

	g.screen.Show()
}
