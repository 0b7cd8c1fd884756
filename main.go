package main

import (
	"embed"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	phasepadApp "phasepad/internal/app"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed build/appicon.png
var icon []byte

func main() {
	// `phasepad mcp` runs headless as an MCP stdio server.
	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		phasepadApp.ServeMCP()
		return
	}

	app := phasepadApp.New()

	err := wails.Run(&options.App{
		Title:     "PhasePad",
		Width:     1920,
		Height:    1080,
		Frameless: true,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		// Fully transparent window: the frontend draws the overlay and
		// the notes, everything else shows the desktop through.
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0},
		AlwaysOnTop:      true,
		OnStartup:        app.Startup,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Windows: &windows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
			DisableWindowIcon:    false,
		},
		Mac: &mac.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
			About: &mac.AboutInfo{
				Title:   "PhasePad",
				Message: "Sticky notes that float over your desktop",
				Icon:    icon,
			},
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
