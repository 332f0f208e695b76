package graphics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Screenshot saves the last rendered viewport (without the sidebar) to
// path. The format follows the extension: .png (default), .jpg or .bmp.
func (w *Window) Screenshot(path string) error {
	if !w.hasTarget {
		return errors.New("screenshot: nothing rendered yet")
	}
	img := rl.LoadImageFromTexture(w.target.Texture)
	defer rl.UnloadImage(img)
	// Render textures are stored upside down.
	flipped := transform.FlipV(img.ToImage())

	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(90)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		enc = imgio.PNGEncoder()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return imgio.Save(path, flipped, enc)
}
