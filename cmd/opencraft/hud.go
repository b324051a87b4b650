package main

import (
	"errors"
	"log"
	"os"

	"opencraft/internal/assets"
	"opencraft/internal/render"
)

// hud is the F3 debug text.
type hud struct {
	text    *assets.Text
	overlay *render.Overlay
	program *render.Program
}

// newHUD returns nil without error when the font is missing; the game runs
// without debug text.
func newHUD(fontPath, shaders string, logger *log.Logger) (*hud, error) {
	text, err := assets.LoadText(fontPath, 512, 160, 20)
	if errors.Is(err, os.ErrNotExist) {
		logger.Printf("no font at %s, debug text disabled", fontPath)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	program, err := render.LoadProgram(shaders, "text")
	if err != nil {
		return nil, err
	}
	img, err := text.Render(nil)
	if err != nil {
		return nil, err
	}
	return &hud{text: text, overlay: render.NewOverlay(program, img), program: program}, nil
}

func (h *hud) Draw(width, height int, lines []string) error {
	img, err := h.text.Render(lines)
	if err != nil {
		return err
	}
	h.overlay.Update(img)
	h.overlay.Draw(width, height)
	return nil
}

func (h *hud) Delete() {
	h.overlay.Delete()
	h.program.Delete()
}
