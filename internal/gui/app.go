package gui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/host"
)

var (
	ColBg   = rl.NewColor(0, 0, 0, 255)
	ColText = rl.NewColor(140, 140, 140, 255)
)

// App is the raylib host. The frame is rendered by the raster surface and
// uploaded to a texture every tick.
type App struct {
	*host.Session
	tex    rl.Texture2D
	pixels []color.RGBA
	texW   int
	texH   int
	dpr    float64
	cfgDPR float64
	log    *log.Logger
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "cosmoviz")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// RunRaylib opens a raylib window for cfg.Visualizer.
func RunRaylib(cfg *config.Config, logger *log.Logger) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	dpr := windowDPR(cfg.DPR)
	s, err := host.New(cfg, cfg.Width, cfg.Height, dpr, logger)
	if err != nil {
		return err
	}
	app := &App{Session: s, dpr: dpr, cfgDPR: cfg.DPR, log: logger}
	defer app.Close()
	app.RunLoop()
	return nil
}

// windowDPR is the scale of the monitor the window is on.
func windowDPR(configured float64) float64 {
	return host.PixelRatio(float64(rl.GetWindowScaleDPI().X), configured)
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and window size, then runs one frame. It reports
// whether the user asked to quit.
func (a *App) Update() bool {
	if rl.IsWindowResized() {
		a.dpr = windowDPR(a.cfgDPR)
		a.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()), a.dpr)
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		return true
	case rl.IsKeyPressed(rl.KeySpace):
		a.TogglePause()
	case rl.IsKeyPressed(rl.KeyTab):
		a.report(a.Next())
	case rl.IsKeyPressed(rl.KeyR):
		a.report(a.Reseed())
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.ShiftStage(-1)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.ShiftStage(1)
	}

	a.Step()
	return false
}

func (a *App) report(err error) {
	if err != nil && a.log != nil {
		a.log.Error("switch failed", "err", err)
	}
}

func (a *App) Draw() {
	a.upload()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	rl.DrawTextureEx(a.tex, rl.NewVector2(0, 0), 0, float32(1/a.dpr), rl.White)
	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
	rl.DrawText(strings.Join(hud(a.Session), "\n"), 10, 10, 10, ColText)
	rl.EndDrawing()
}

// upload copies the surface into the texture, recreating it when the
// surface size changed.
func (a *App) upload() {
	img := a.Surface().Image()
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	if w != a.texW || h != a.texH {
		if a.texW > 0 {
			rl.UnloadTexture(a.tex)
		}
		im := rl.NewImageFromImage(img)
		a.tex = rl.LoadTextureFromImage(im)
		rl.UnloadImage(im)
		a.texW, a.texH = w, h
		a.pixels = make([]color.RGBA, w*h)
	}
	toRGBA(a.pixels, img.Pix)
	rl.UpdateTexture(a.tex, a.pixels)
}

func (a *App) Close() {
	if a.texW > 0 {
		rl.UnloadTexture(a.tex)
	}
	a.Session.Close()
}
