package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/ToonChess/internal/launch"
	"github.com/piwi3910/ToonChess/internal/model"
)

// App holds the launcher window and its collaborators.
type App struct {
	window     fyne.Window
	session    *Session
	supervisor *launch.Supervisor
	logger     *slog.Logger

	// UI references for dynamic updates
	playBtn *ttwidget.Button
	status  *widget.Label
	fields  map[string]func(value string)
	entries map[string]*commitEntry
}

// NewApp wires the session and supervisor to the window. The supervisor's
// dispatcher must deliver callbacks on the UI thread (fyne.Do).
func NewApp(window fyne.Window, session *Session, supervisor *launch.Supervisor, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		window:     window,
		session:    session,
		supervisor: supervisor,
		logger:     logger,
		fields:     make(map[string]func(string)),
		entries:    make(map[string]*commitEntry),
	}

	session.Subscribe(func(key, value string) {
		if update, ok := a.fields[key]; ok {
			update(value)
		}
	})
	supervisor.OnStateChange = a.onLaunchState
	supervisor.OnComplete = a.onLaunchComplete
	supervisor.OnError = a.showRuntimeError
	return a
}

// SetupMenus creates the native menu bar and keyboard shortcuts.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Settings...", a.importSettings),
		fyne.NewMenuItem("Export Settings...", a.exportSettings),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset to Defaults", a.reset),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Share Settings...", a.showShareDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))

	c := a.window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.redo() })
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About ToonChess",
		"ToonChess Launcher\n\n"+
			"Configure graphics, AI and colors, then start a game.\n\n"+
			"Settings file:\n"+a.configPathHint(),
		a.window,
	)
}

func (a *App) configPathHint() string {
	if p, ok := a.session.store.(interface{ Path() string }); ok {
		return p.Path()
	}
	return "(unknown)"
}

// Build constructs the launcher form and returns the root object.
func (a *App) Build() fyne.CanvasObject {
	graphics := widget.NewCard(model.GroupGraphics, "", a.buildForm(model.SpecsInGroup(model.GroupGraphics)))
	game := widget.NewCard(model.GroupGame, "", a.buildForm(model.SpecsInGroup(model.GroupGame)))
	colors := widget.NewCard(model.GroupColors, "", a.buildColorGrid(model.SpecsInGroup(model.GroupColors)))

	a.playBtn = newButtonWithTooltip("Play", theme.MediaPlayIcon(),
		"Save the settings and start the game", a.play)
	a.playBtn.Importance = widget.HighImportance

	resetBtn := newButtonWithTooltip("Reset default", theme.ViewRefreshIcon(),
		"Restore every setting to its built-in default", a.reset)

	a.status = widget.NewLabel("")

	buttons := container.NewHBox(a.status, layout.NewSpacer(), resetBtn, a.playBtn)

	content := container.NewBorder(nil, buttons, nil, nil,
		container.NewVScroll(container.NewVBox(
			container.NewGridWithColumns(2, graphics, game),
			colors,
		)),
	)
	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

// ShowWarnings reports problems found while loading the settings file.
func (a *App) ShowWarnings() {
	warnings := a.session.Warnings()
	if len(warnings) == 0 {
		return
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = "• " + w.Error()
	}
	dialog.ShowInformation("Settings",
		"Some stored settings were ignored:\n\n"+strings.Join(lines, "\n"), a.window)
}

// ─── Setting fields ────────────────────────────────────────

func (a *App) buildForm(specs []model.Spec) fyne.CanvasObject {
	form := widget.NewForm()
	for _, spec := range specs {
		form.Append(spec.Label, a.buildField(spec))
	}
	return form
}

func (a *App) buildField(spec model.Spec) fyne.CanvasObject {
	current := a.session.Value(spec.Key)

	switch spec.Kind {
	case model.KindChoice:
		sel := widget.NewSelect(spec.Choices, nil)
		sel.SetSelected(current)
		sel.OnChanged = func(v string) { a.change(spec.Key, v) }
		a.fields[spec.Key] = func(v string) { sel.SetSelected(v) }
		return sel

	case model.KindBool:
		check := widget.NewCheck("", nil)
		check.SetChecked(current == "true")
		check.OnChanged = func(b bool) {
			if b {
				a.change(spec.Key, "true")
			} else {
				a.change(spec.Key, "false")
			}
		}
		a.fields[spec.Key] = func(v string) { check.SetChecked(v == "true") }
		return check

	default:
		var entry *commitEntry
		entry = newCommitEntry(func(s string) {
			if model.Validate(spec.Key, s) != nil {
				// Rejected input goes back to the stored value.
				entry.SetText(a.session.Value(spec.Key))
				return
			}
			a.change(spec.Key, s)
		})
		entry.SetText(current)
		entry.Validator = func(s string) error { return model.Validate(spec.Key, s) }
		a.entries[spec.Key] = entry
		a.fields[spec.Key] = func(v string) {
			if entry.Text != v {
				entry.SetText(v)
			}
		}
		return entry
	}
}

func (a *App) buildColorGrid(specs []model.Spec) fyne.CanvasObject {
	grid := container.NewGridWithColumns(4)
	for _, spec := range specs {
		grid.Add(widget.NewLabel(spec.Label))
		grid.Add(a.buildColorField(spec))
	}
	return grid
}

func (a *App) buildColorField(spec model.Spec) fyne.CanvasObject {
	swatch := canvas.NewRectangle(a.session.Snapshot().Color(spec.Key))
	swatch.SetMinSize(fyne.NewSize(48, 24))
	swatch.CornerRadius = 4

	pick := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		a.pickColor(spec)
	})

	a.fields[spec.Key] = func(v string) {
		if c, err := model.ParseColor(v); err == nil {
			swatch.FillColor = c
			swatch.Refresh()
		}
	}
	return container.NewBorder(nil, nil, nil, pick, swatch)
}

func (a *App) pickColor(spec model.Spec) {
	picker := dialog.NewColorPicker(spec.Label, "Pick a color", func(c color.Color) {
		a.change(spec.Key, model.ColorFrom(c).String())
	}, a.window)
	picker.Advanced = true
	picker.SetColor(a.session.Snapshot().Color(spec.Key))
	picker.Show()
}

// change applies one edit; the session saves it immediately.
func (a *App) change(key, value string) {
	if err := a.session.Set(key, value); err != nil {
		a.logger.Error("failed to apply setting", "key", key, "error", err)
		dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
	}
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) play() {
	_, err := a.supervisor.RequestPlay(a.session.Snapshot())
	switch {
	case err == nil:
	case errors.Is(err, launch.ErrBusy):
		// The running game keeps the slot; the button is already disabled.
	default:
		dialog.ShowError(err, a.window)
	}
}

func (a *App) reset() {
	if err := a.session.Reset(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
	}
}

func (a *App) undo() {
	if _, err := a.session.Undo(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
	}
}

func (a *App) redo() {
	if _, err := a.session.Redo(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
	}
}

// ─── Launch callbacks (UI thread) ──────────────────────────

func (a *App) onLaunchState(state launch.State) {
	if state == launch.Running {
		a.playBtn.Disable()
		a.status.SetText("Game running...")
		return
	}
	a.playBtn.Enable()
}

func (a *App) onLaunchComplete(l launch.Launch) {
	if l.Err != nil {
		a.status.SetText("Game failed to start")
		return
	}
	a.status.SetText(fmt.Sprintf("Last game ran for %s", l.Duration().Round(time.Second)))
}

func (a *App) showRuntimeError(title, message string) {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(label)
	scroll.SetMinSize(fyne.NewSize(420, 160))
	dialog.ShowCustom(title, "Close", scroll, a.window)
}
