package model

// Block is the canonical layout unit: a text span with its bounding box
// (PDF points, origin top-left) and font size.
type Block struct {
	Text string
	X0   float64
	Y0   float64
	X1   float64
	Y1   float64
	Size float64
}

const defaultFontSize = 12

// NormalizeBlocks resolves heterogeneous upstream block shapes into
// canonical Blocks. Recognized shapes:
//
//	map[string]any{"text": ..., "bbox": [x0,y0,x1,y1], "size": ...}
//	[]any{x0, y0, x1, y1, text, size}
//	[]any{x0, y0, x1, y1, text}
//	[]any{text, size, bbox}
//	[]any{text, bbox}
//
// Unrecognized shapes are skipped rather than guessed at.
func NormalizeBlocks(raw []any) []Block {
	out := make([]Block, 0, len(raw))

	for _, r := range raw {
		switch v := r.(type) {
		case Block:
			out = append(out, v)
		case map[string]any:
			b, ok := blockFromMap(v)
			if ok {
				out = append(out, b)
			}
		case []any:
			b, ok := blockFromSlice(v)
			if ok {
				out = append(out, b)
			}
		}
	}

	return out
}

func blockFromMap(m map[string]any) (Block, bool) {
	text, ok := m["text"].(string)
	if !ok {
		return Block{}, false
	}
	bbox, ok := toBBox(m["bbox"])
	if !ok {
		return Block{}, false
	}

	size := float64(defaultFontSize)
	if s, ok := toFloat(m["size"]); ok {
		size = s
	}

	return Block{Text: text, X0: bbox[0], Y0: bbox[1], X1: bbox[2], Y1: bbox[3], Size: size}, true
}

func blockFromSlice(s []any) (Block, bool) {
	switch len(s) {
	case 6: // [x0, y0, x1, y1, text, size]
		coords, ok := toFloats(s[:4])
		if !ok {
			return Block{}, false
		}
		text, ok := s[4].(string)
		if !ok {
			return Block{}, false
		}
		size, ok := toFloat(s[5])
		if !ok {
			size = defaultFontSize
		}
		return Block{Text: text, X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3], Size: size}, true

	case 5: // [x0, y0, x1, y1, text]
		coords, ok := toFloats(s[:4])
		if !ok {
			return Block{}, false
		}
		text, ok := s[4].(string)
		if !ok {
			return Block{}, false
		}
		return Block{Text: text, X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3], Size: defaultFontSize}, true

	case 3: // [text, size, bbox]
		text, ok := s[0].(string)
		if !ok {
			return Block{}, false
		}
		size, ok := toFloat(s[1])
		if !ok {
			return Block{}, false
		}
		bbox, ok := toBBox(s[2])
		if !ok {
			return Block{}, false
		}
		return Block{Text: text, X0: bbox[0], Y0: bbox[1], X1: bbox[2], Y1: bbox[3], Size: size}, true

	case 2: // [text, bbox]
		text, ok := s[0].(string)
		if !ok {
			return Block{}, false
		}
		bbox, ok := toBBox(s[1])
		if !ok {
			return Block{}, false
		}
		return Block{Text: text, X0: bbox[0], Y0: bbox[1], X1: bbox[2], Y1: bbox[3], Size: defaultFontSize}, true
	}

	return Block{}, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toFloats(vs []any) ([4]float64, bool) {
	var out [4]float64
	if len(vs) < 4 {
		return out, false
	}
	for i := 0; i < 4; i++ {
		f, ok := toFloat(vs[i])
		if !ok {
			return out, false
		}
		out[i] = f
	}
	return out, true
}

func toBBox(v any) ([4]float64, bool) {
	switch b := v.(type) {
	case []any:
		return toFloats(b)
	case []float64:
		if len(b) < 4 {
			return [4]float64{}, false
		}
		return [4]float64{b[0], b[1], b[2], b[3]}, true
	case [4]float64:
		return b, true
	}
	return [4]float64{}, false
}
