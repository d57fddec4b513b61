package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainingdesk/brochure-cli/internal/config"
)

func TestNewProvider_Tesseract(t *testing.T) {
	p, err := NewProvider(config.OCRConfig{Provider: "tesseract", TesseractPath: "/usr/bin/tesseract"})
	require.NoError(t, err)
	assert.IsType(t, &Tesseract{}, p)
}

func TestNewProvider_Off(t *testing.T) {
	p, err := NewProvider(config.OCRConfig{Provider: "off"})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(config.OCRConfig{Provider: "easyocr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown provider "easyocr"`)
}

func TestTesseract_BinPath(t *testing.T) {
	tess := NewTesseract("")
	assert.Equal(t, "tesseract", tess.path)

	tess = NewTesseract("/custom/tesseract")
	assert.Equal(t, "/custom/tesseract", tess.path)
}

func TestTesseract_AvailableMissingBinary(t *testing.T) {
	tess := NewTesseract("/nonexistent/tesseract")
	assert.False(t, tess.Available())
}
