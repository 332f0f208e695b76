package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"mesh-creator/internal/commands"
	"mesh-creator/internal/config"
	"mesh-creator/internal/editor"
	"mesh-creator/internal/env"
	"mesh-creator/internal/fonts"
	"mesh-creator/internal/graphics"
	"mesh-creator/internal/logger"
	"mesh-creator/internal/presets"
	"mesh-creator/internal/sandbox"
	"mesh-creator/internal/ui"
	"mesh-creator/internal/ui/style"
	"mesh-creator/internal/viewport"
)

// themeFile optionally overrides the embedded sidebar theme.
const themeFile = "config/theme.css"

// fontSize is the size glyphs are rasterized at; text is scaled from it.
const fontSize = 32

// app ties the session, editor and sidebar together. Its methods run on
// the render goroutine unless noted.
type app struct {
	ctx     context.Context
	log     *logger.Logger
	prefs   config.Prefs
	loader  *presets.Loader
	session *viewport.Session
	window  *graphics.Window
	buf     *editor.Buffer
	sidebar *ui.Sidebar
	reg     *commands.Registry
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "meshcreator:", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.New()
	log.SetEcho(os.Stderr)
	if err := env.Load(); err != nil {
		log.Log("Error loading .env: " + err.Error())
	}
	prefs, err := config.Load(config.Path())
	if err != nil {
		log.Log("Error loading config, using defaults: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader, err := presets.NewLoader(prefs.PresetDir)
	if err != nil {
		return err
	}
	fallback, err := loader.Builtin(presets.DefaultName)
	if err != nil {
		return err
	}

	sb := sandbox.New(sandbox.Options{
		Timeout: prefs.ScriptTimeout,
		OnLog:   func(msg string) { log.Log("script: " + msg) },
	})

	window := graphics.Open(graphics.Options{
		Width:        prefs.Window.Width,
		Height:       prefs.Window.Height,
		Title:        prefs.Window.Title,
		TargetFPS:    prefs.Window.TargetFPS,
		SidebarWidth: prefs.Window.SidebarWidth,
	})
	session := viewport.New(window, viewport.Options{
		Runner:        sb,
		Log:           log,
		Fovy:          prefs.Camera.Fovy,
		EnableDamping: prefs.Camera.EnableDamping,
		DampingFactor: prefs.Camera.DampingFactor,
		Background:    prefs.Background,
		GridVisible:   prefs.GridVisible,
		FallbackCode:  fallback,
	})
	defer session.Close()
	if err := session.Init(window.ViewportSize()); err != nil {
		return err
	}

	a := &app{
		ctx:     ctx,
		log:     log,
		prefs:   prefs,
		loader:  loader,
		session: session,
		window:  window,
		buf:     editor.NewBuffer(fallback, prefs.Editor),
		reg:     commands.NewRegistry(),
	}
	eng := a.newEngine()
	defer eng.Unload()

	view, errs := ui.NewEditorView(eng, a.buf)
	for _, err := range errs {
		log.Log("Error binding key: " + err.Error())
	}
	view.Focus(true)
	a.sidebar = ui.NewSidebar(eng, prefs.Window.Title, view, a.presetButtons(), session.Snapshot)
	a.sidebar.HUD().ShowFPS = prefs.ShowFPS
	a.sidebar.OnGenerate = a.generate
	a.sidebar.OnPreset = a.loadPreset
	a.sidebar.OnCommand = a.runCommand
	a.registerCommands()

	if err := loader.Watch(ctx, a.presetsChanged); err != nil {
		log.Log("Error watching presets: " + err.Error())
	}

	window.OnFrame(func() {
		_, h := window.ViewportSize()
		a.sidebar.Update(window.SidebarWidth(), h)
		snap := session.Snapshot()
		in := window.ReadOrbit(snap.Camera.Distance())
		if !in.IsZero() {
			session.Orbit(in.RotateLeft, in.RotateUp, in.Zoom, in.PanRight, in.PanUp)
		}
	})
	window.AddOverlay(func() {
		a.sidebar.Draw(window.ViewportRect())
	})

	err = session.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// newEngine loads the theme and the editor font.
func (a *app) newEngine() *ui.Engine {
	eng := ui.NewEngine(style.Default())
	if _, err := os.Stat(themeFile); err == nil {
		if err := eng.LoadCSS(themeFile); err != nil {
			a.log.Log("Error loading theme: " + err.Error())
		}
	}
	if path, err := fonts.FindMonospace(fonts.BaseDirs()); err == nil {
		if err := eng.LoadFont(path, fontSize); err != nil {
			a.log.Log("Error loading font " + path + ": " + err.Error())
		}
	}
	return eng
}

func (a *app) presetButtons() []ui.PresetButton {
	list, err := a.loader.List()
	if err != nil {
		a.log.Log("Error reading presets: " + err.Error())
	}
	buttons := make([]ui.PresetButton, 0, len(list))
	for _, p := range list {
		label := p.Title
		if label == "" {
			label = p.Name
		}
		buttons = append(buttons, ui.PresetButton{Name: p.Name, Label: label})
	}
	return buttons
}

// generate runs the editor content in the background. The session reports
// progress and errors through its status line.
func (a *app) generate() {
	code := a.buf.GetValue()
	go func() {
		err := a.session.Generate(a.ctx, code)
		if err != nil && !errors.Is(err, viewport.ErrSuperseded) {
			a.log.Log("generate: " + err.Error())
		}
	}()
}

// loadPreset replaces the editor content with a preset once it is read.
// Only the latest request may write the editor.
func (a *app) loadPreset(name string) {
	var ticket uint64
	ticket = a.loader.LoadAsync(a.ctx, name, func(name, src string, err error) {
		if errors.Is(err, presets.ErrSuperseded) {
			return
		}
		a.sidebar.Post(func() {
			if !a.loader.Current(ticket) {
				return
			}
			if err != nil {
				a.session.SetStatus("Error loading example: " + err.Error())
				return
			}
			a.buf.SetValue(src)
			a.session.SetStatus("Loaded " + name + " example")
		})
	})
}

// presetsChanged runs on the watcher goroutine.
func (a *app) presetsChanged(path string) {
	a.log.Log("presets changed: " + filepath.Base(path))
	a.sidebar.Post(func() {
		a.sidebar.SetPresets(a.presetButtons())
	})
}

func (a *app) runCommand(line string) {
	if err := a.reg.Run(line); err != nil {
		a.session.SetError(err.Error())
	}
}
