// ToonChess Launcher: settings form and game launcher for ToonChess
//
// A small desktop window that edits the game's graphics, AI and color
// settings, writes them to the game's config file and starts the game.
//
// Build:
//   go build -o toonchess-launcher ./cmd/toonchess-launcher
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o toonchess-launcher.exe ./cmd/toonchess-launcher
//   GOOS=darwin  GOARCH=amd64 go build -o toonchess-launcher-darwin ./cmd/toonchess-launcher
//
// Flags (environment fallback in parentheses):
//   -config     settings file   (TOONCHESS_CONFIG, default ~/.toonchess/config.txt)
//   -game       game executable (TOONCHESS_GAME, default ToonChess)
//   -log-level  debug|info|warn|error (TOONCHESS_LOG_LEVEL, default info)

package main

import (
	"flag"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/ToonChess/internal/config"
	"github.com/piwi3910/ToonChess/internal/launch"
	"github.com/piwi3910/ToonChess/internal/model"
	"github.com/piwi3910/ToonChess/internal/ui"
)

const defaultGame = "ToonChess"

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func main() {
	configPath := flag.String("config", envOr("TOONCHESS_CONFIG", config.DefaultConfigPath()), "settings file written before each launch")
	game := flag.String("game", envOr("TOONCHESS_GAME", defaultGame), "game executable started on Play")
	logLevel := flag.String("log-level", envOr("TOONCHESS_LOG_LEVEL", "info"), "log level: debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store := config.NewStore(*configPath)
	session := ui.NewSession(store, model.Defaults(), logger)
	supervisor := launch.NewSupervisor(store, launch.ExecRunner{}, *game, fyne.Do,
		launch.WithLogger(logger),
	)
	logger.Info("launcher starting", "config", store.Path(), "game", *game)

	application := app.NewWithID("com.piwi3910.toonchess")
	application.Settings().SetTheme(ui.NewLauncherTheme())

	window := application.NewWindow("ToonChess")

	appUI := ui.NewApp(window, session, supervisor, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(720, 520))
	window.CenterOnScreen()

	window.Show()
	appUI.ShowWarnings()
	application.Run()
}
