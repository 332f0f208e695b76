package main

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"mesh-creator/internal/commands"
	"mesh-creator/internal/config"
	"mesh-creator/internal/sandbox"
)

// registerCommands adds the commands editor key chords can run.
func (a *app) registerCommands() {
	a.reg.Register("generate", "run the editor code", nil, func() error {
		a.generate()
		return nil
	})

	presetFS := commands.NewFlagSet("preset")
	presetName := presetFS.String("name", "", "preset to load (cube, sphere, cylinder, torus or a user preset)")
	a.reg.Register("preset", "-name <name>: load an example into the editor", presetFS, func() error {
		if *presetName == "" {
			return errors.New("preset: -name is required")
		}
		a.loadPreset(*presetName)
		return nil
	})

	gridFS := commands.NewFlagSet("grid")
	gridVisible := gridFS.Bool("visible", true, "show the ground grid")
	a.reg.Register("grid", "-visible=true|false: show or hide the grid", gridFS, func() error {
		a.session.SetGridVisible(*gridVisible)
		a.prefs.GridVisible = *gridVisible
		return nil
	})

	fpsFS := commands.NewFlagSet("fps")
	fpsShow := fpsFS.Bool("show", true, "show the FPS counter")
	fpsMem := fpsFS.Bool("mem", false, "also show heap usage")
	a.reg.Register("fps", "-show=true|false [-mem]: toggle the FPS overlay", fpsFS, func() error {
		hud := a.sidebar.HUD()
		hud.ShowFPS = *fpsShow
		hud.ShowMemAlloc = *fpsShow && *fpsMem
		a.prefs.ShowFPS = *fpsShow
		return nil
	})

	a.reg.Register("autocomplete", "complete the word before the cursor", nil, func() error {
		matches := a.buf.AutoComplete(sandbox.Names())
		if len(matches) > 1 {
			a.session.SetStatus("Completions: " + strings.Join(matches, ", "))
		}
		return nil
	})

	a.reg.Register("reset-camera", "refit the camera to the mesh", nil, func() error {
		a.session.ResetCamera()
		return nil
	})

	a.reg.Register("save-config", "write the current preferences", nil, func() error {
		path := config.Path()
		if err := config.Save(path, a.prefs); err != nil {
			return err
		}
		a.session.SetStatus("Saved " + path)
		return nil
	})

	shotFS := commands.NewFlagSet("screenshot")
	shotPath := shotFS.String("path", "", "output file (.png, .jpg or .bmp)")
	a.reg.Register("screenshot", "[-path <file>]: save the viewport as an image", shotFS, func() error {
		path := *shotPath
		if path == "" {
			path = filepath.Join("screenshots", "mesh-"+time.Now().Format("20060102-150405")+".png")
		}
		if err := a.window.Screenshot(path); err != nil {
			return err
		}
		a.session.SetStatus("Saved " + path)
		return nil
	})

	a.reg.Register("help", "list commands", nil, func() error {
		for _, line := range a.reg.Help() {
			a.log.Log(line)
		}
		a.session.SetStatus("Commands: " + strings.Join(a.reg.Names(), ", "))
		return nil
	})
}
