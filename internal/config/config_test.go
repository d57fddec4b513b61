package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 300, cfg.Extract.OCRTextThreshold)
	assert.Equal(t, 25, cfg.Extract.LogoHashThreshold)
	assert.Equal(t, 40.0, cfg.Layout.LabelTolerance)
	assert.Equal(t, 0.8, cfg.Layout.TitleFontRatio)
	assert.Equal(t, 4000, cfg.LLM.TextCap)
	assert.Equal(t, 0.15, cfg.Classify.LexicalWeight)
	assert.Equal(t, 0.85, cfg.Classify.SemanticWeight)
	assert.Equal(t, 0.55, cfg.Classify.HighScore)
	assert.Equal(t, 0.08, cfg.Classify.HighMargin)
	assert.Equal(t, 0.03, cfg.Classify.CloseCallMargin)
	assert.Equal(t, 10, cfg.Classify.TitleBoost)
	assert.Equal(t, 1500, cfg.Classify.RawSlice)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrentDocuments)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	yaml := []byte("classify:\n  top_k: 7\n  rerank: false\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Classify.TopK)
	assert.False(t, cfg.Classify.Rerank)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults.
	assert.Equal(t, 60, cfg.Classify.SemanticPool)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	assert.Error(t, err)
}
