package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/ToonChess/internal/config"
	"github.com/piwi3910/ToonChess/internal/model"
)

const qrSize = 256

// SettingsQRCode renders the persisted settings, in config file format, as
// a PNG QR code.
func SettingsQRCode(snapshot model.Snapshot) ([]byte, error) {
	text, err := config.Encode(snapshot)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(text), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// showShareDialog displays the current settings as a QR code that can be
// scanned and saved as config.txt on another machine.
func (a *App) showShareDialog() {
	png, err := SettingsQRCode(a.session.Snapshot())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	img := canvas.NewImageFromResource(fyne.NewStaticResource("toonchess-settings.png", png))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(qrSize, qrSize))

	content := container.NewVBox(
		widget.NewLabel("Scan to copy these settings to another machine."),
		img,
	)
	dialog.ShowCustom("Share Settings", "Close", content, a.window)
}

func (a *App) exportSettings() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := config.ExportBackup(path, a.session.Snapshot()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Settings exported to:\n%s", path), a.window)
	}, a.window)
	d.SetFileName("toonchess-settings.json")
	d.Show()
}

func (a *App) importSettings() {
	dialog.ShowConfirm("Import Settings",
		"Importing will replace your current settings.\n\nAre you sure you want to continue?",
		func(ok bool) {
			if !ok {
				return
			}
			d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				defer reader.Close()
				path := reader.URI().Path()
				backup, err := config.ImportBackup(path)
				if err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				if err := a.session.Replace(backup.Settings, "Import settings"); err != nil {
					dialog.ShowError(fmt.Errorf("failed to apply imported settings: %w", err), a.window)
					return
				}
				dialog.ShowInformation("Import Complete",
					fmt.Sprintf("Settings imported from backup created at %s.", backup.CreatedAt), a.window)
			}, a.window)
			d.Show()
		},
		a.window,
	)
}
