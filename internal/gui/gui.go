// Package gui hosts a visualizer in a desktop window. The backends only
// pump frames and forward input; host.Session owns the animator.
package gui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/host"
)

var ErrUnknownBackend = errors.New("gui: unknown backend")

// Backends lists the window backends. The first is the default.
var Backends = []string{"raylib", "ebiten"}

// Run opens a window on the named backend and blocks until it closes.
func Run(backend string, cfg *config.Config, logger *log.Logger) error {
	switch backend {
	case "", "raylib":
		return RunRaylib(cfg, logger)
	case "ebiten":
		return RunEbiten(cfg, logger)
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

func hud(s *host.Session) []string {
	lines := []string{fmt.Sprintf("%s  frame %d", s.Kind(), s.Animator().Frames())}
	if st, ok := s.Stage(); ok {
		lines = append(lines, fmt.Sprintf("%d/%d %s  %.0f%%", st.Index+1, st.Count, st.Name, st.Progress*100))
	} else {
		lines = append(lines, fmt.Sprintf("%d particles", s.Population()))
	}
	if s.Paused() {
		lines = append(lines, "paused")
	}
	return append(lines, "space pause  tab next  r reseed  [ ] stage  q quit")
}
