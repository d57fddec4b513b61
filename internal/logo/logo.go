// Package logo detects the HRDC claimable-programme logo by perceptual
// hash distance against a reference image.
package logo

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/corona10/goimagehash"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Detector holds the reference logo hash and the Hamming distance cutoff.
type Detector struct {
	ref       *goimagehash.ImageHash
	threshold int
}

// NewDetector loads the reference logo image and hashes it once.
func NewDetector(path string, threshold int) (*Detector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "logo: open reference %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, eris.Wrap(err, "logo: decode reference")
	}

	ref, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, eris.Wrap(err, "logo: hash reference")
	}

	return &Detector{ref: ref, threshold: threshold}, nil
}

// Detect reports whether any candidate image hashes within the distance
// cutoff of the reference. Images that fail to hash are skipped.
func (d *Detector) Detect(images []image.Image) (bool, error) {
	if len(images) == 0 {
		return false, nil
	}

	for i, img := range images {
		h, err := goimagehash.PerceptionHash(img)
		if err != nil {
			zap.L().Warn("logo: hash candidate", zap.Int("index", i), zap.Error(err))
			continue
		}

		dist, err := d.ref.Distance(h)
		if err != nil {
			return false, eris.Wrap(err, "logo: hash distance")
		}
		if dist <= d.threshold {
			zap.L().Debug("logo: match", zap.Int("index", i), zap.Int("distance", dist))
			return true, nil
		}
	}

	return false, nil
}
