package recognition

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// patternImage draws an opaque image whose pixels differ everywhere, so
// crops at different offsets hash differently.
func patternImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 3), G: uint8(y * 5), B: uint8(x ^ y), A: 0xff})
		}
	}
	return img
}

// noiseImage draws seeded random pixels, which PNG cannot compress much, so
// the encoding spans many chunks.
func noiseImage(w, h int, seed uint64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rng.Uint32())
		img.Pix[i+1] = uint8(rng.Uint32())
		img.Pix[i+2] = uint8(rng.Uint32())
		img.Pix[i+3] = 0xff
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func split(data []byte, size int) [][]byte {
	var chunks [][]byte
	for len(data) > 0 {
		n := min(size, len(data))
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return chunks
}

// streamOf yields a header fragment followed by one fragment per chunk.
func streamOf(header *domain.Header, chunks [][]byte) NextFunc {
	fragments := make([]Fragment, 0, len(chunks)+1)
	fragments = append(fragments, Fragment{Header: header})
	for _, c := range chunks {
		fragments = append(fragments, Fragment{Chunk: c})
	}
	return fragmentsOf(fragments...)
}

func fragmentsOf(fragments ...Fragment) NextFunc {
	i := 0
	return func() (Fragment, error) {
		if i >= len(fragments) {
			return Fragment{}, io.EOF
		}
		f := fragments[i]
		i++
		return f, nil
	}
}
