package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/logo"
	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/internal/store"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func newRunRecorder(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

// whiteLogoDetector matches any bright page render.
func whiteLogoDetector(t *testing.T) *logo.Detector {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}

	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	d, err := logo.NewDetector(path, 64)
	require.NoError(t, err)
	return d
}

func TestCorroborateHRDC_LogoMatchIsHigh(t *testing.T) {
	p := testProcessor(t, nil)
	p.logo = whiteLogoDetector(t)

	rec := model.NewRecord()
	p.corroborateHRDC(rec, &fakeDoc{}, testLogger())

	assert.True(t, rec.HRDC.Certified)
	assert.Equal(t, model.High, rec.HRDC.Confidence)
	assert.Contains(t, rec.Flags(), "HRDC_LOGO_DETECTED")
}
