package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Tesseract shells out to the tesseract binary. Page segmentation mode 6
// (single uniform block) works best on brochure pages.
type Tesseract struct {
	path string
}

// NewTesseract returns a provider using the given binary path, defaulting
// to "tesseract" on PATH.
func NewTesseract(path string) *Tesseract {
	if path == "" {
		path = "tesseract"
	}
	return &Tesseract{path: path}
}

// Recognize writes the image to a temp PNG and runs tesseract over it.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	dir, err := os.MkdirTemp("", "brochure-ocr-")
	if err != nil {
		return "", eris.Wrap(err, "ocr: create temp dir")
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "page.png")
	f, err := os.Create(in)
	if err != nil {
		return "", eris.Wrap(err, "ocr: create temp image")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", eris.Wrap(err, "ocr: encode image")
	}
	if err := f.Close(); err != nil {
		return "", eris.Wrap(err, "ocr: close temp image")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, in, "stdout", "--psm", "6")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: tesseract failed: %s", stderr.String())
	}

	return stdout.String(), nil
}

// Available reports whether the tesseract binary can be found.
func (t *Tesseract) Available() bool {
	if filepath.IsAbs(t.path) {
		_, err := os.Stat(t.path)
		return err == nil
	}
	_, err := exec.LookPath(t.path)
	return err == nil
}
