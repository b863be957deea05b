// Package recognition turns a stream of fragments into face identities.
package recognition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

// Fragment is one message of a recognition stream. The first fragment
// carries the header, every later one an image chunk.
type Fragment struct {
	Header *domain.Header
	Chunk  []byte
}

// NextFunc returns the next fragment, or io.EOF once the client has
// finished sending.
type NextFunc func() (Fragment, error)

// Assembler rebuilds the image from ordered chunks.
type Assembler struct {
	maxBytes  int
	header    *domain.Header
	buf       bytes.Buffer
	fragments int
	logger    *slog.Logger
}

func NewAssembler(maxBytes int, logger *slog.Logger) *Assembler {
	return &Assembler{maxBytes: maxBytes, logger: logger}
}

// Add consumes one fragment. Chunks are appended in arrival order, without
// reordering or deduplication.
func (a *Assembler) Add(f Fragment) error {
	a.fragments++

	if a.fragments == 1 {
		if f.Header == nil {
			return domain.ErrMissingHeader
		}
		h := domain.Header{Faces: append([]domain.Region(nil), f.Header.Faces...)}
		a.header = &h
	} else if f.Header != nil {
		a.logger.Debug("ignoring header on later fragment", slog.Int("fragment", a.fragments))
	}

	if len(f.Chunk) == 0 {
		return nil
	}
	if a.maxBytes > 0 && a.buf.Len()+len(f.Chunk) > a.maxBytes {
		return domain.ErrImageTooLarge.WithError(
			fmt.Errorf("received %d bytes, limit is %d", a.buf.Len()+len(f.Chunk), a.maxBytes))
	}
	a.buf.Write(f.Chunk)
	return nil
}

// Drain pulls fragments until io.EOF. The context is checked between
// fragments so an abandoned request stops early.
func (a *Assembler) Drain(ctx context.Context, next NextFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if err := a.Add(f); err != nil {
			return err
		}
	}

	if a.header == nil {
		return domain.ErrMissingHeader.WithError(errors.New("stream ended before a header arrived"))
	}
	return nil
}

// Header is only valid after a successful Drain or Add.
func (a *Assembler) Header() domain.Header {
	if a.header == nil {
		return domain.Header{}
	}
	return *a.header
}

func (a *Assembler) Bytes() []byte { return a.buf.Bytes() }

func (a *Assembler) Fragments() int { return a.fragments }
