package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBlocks_MapShape(t *testing.T) {
	raw := []any{
		map[string]any{"text": "VENUE", "bbox": []any{10.0, 20.0, 60.0, 35.0}, "size": 14.0},
		map[string]any{"text": "no bbox"},
	}

	blocks := NormalizeBlocks(raw)

	assert.Len(t, blocks, 1)
	assert.Equal(t, Block{Text: "VENUE", X0: 10, Y0: 20, X1: 60, Y1: 35, Size: 14}, blocks[0])
}

func TestNormalizeBlocks_SliceShapes(t *testing.T) {
	raw := []any{
		[]any{1.0, 2.0, 3.0, 4.0, "six fields", 18.0},
		[]any{5.0, 6.0, 7.0, 8.0, "five fields"},
		[]any{"three fields", 10.0, []any{1.0, 1.0, 2.0, 2.0}},
		[]any{"two fields", []any{0.0, 0.0, 9.0, 9.0}},
	}

	blocks := NormalizeBlocks(raw)

	assert.Len(t, blocks, 4)
	assert.Equal(t, 18.0, blocks[0].Size)
	assert.Equal(t, "five fields", blocks[1].Text)
	assert.Equal(t, 12.0, blocks[1].Size, "missing size defaults to 12")
	assert.Equal(t, 10.0, blocks[2].Size)
	assert.Equal(t, 9.0, blocks[3].X1)
}

func TestNormalizeBlocks_SkipsUnrecognizedShapes(t *testing.T) {
	raw := []any{
		42,
		"just a string",
		[]any{"only one"},
		[]any{"text", "not a bbox"},
		nil,
	}

	assert.Empty(t, NormalizeBlocks(raw))
}

func TestNormalizeBlocks_PassesThroughCanonical(t *testing.T) {
	b := Block{Text: "x", X0: 1, Y0: 2, X1: 3, Y1: 4, Size: 9}
	blocks := NormalizeBlocks([]any{b})
	assert.Equal(t, []Block{b}, blocks)
}
