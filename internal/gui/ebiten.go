package gui

import (
	"errors"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/host"
)

type game struct {
	*host.Session
	frame  *ebiten.Image
	cfgDPR float64
}

// RunEbiten opens an ebiten window for cfg.Visualizer.
func RunEbiten(cfg *config.Config, logger *log.Logger) error {
	s, err := host.New(cfg, cfg.Width, cfg.Height, cfg.DPR, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("cosmoviz")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(&game{Session: s, cfgDPR: cfg.DPR}); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if err := g.Next(); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.Reseed(); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.ShiftStage(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.ShiftStage(1)
	}
	g.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	img := g.Surface().Image()
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w, h)
	}
	g.frame.WritePixels(img.Pix)
	screen.DrawImage(g.frame, nil)
	ebitenutil.DebugPrint(screen, strings.Join(hud(g.Session), "\n"))
}

// Layout renders at device resolution. The surface keeps logical units
// and takes the scale factor as its pixel ratio.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := host.PixelRatio(ebiten.Monitor().DeviceScaleFactor(), g.cfgDPR)
	g.Resize(float64(outsideWidth), float64(outsideHeight), dpr)
	return int(math.Round(float64(outsideWidth) * dpr)), int(math.Round(float64(outsideHeight) * dpr))
}
