package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyName      = errors.New("archive entry name is empty")
	ErrDuplicateEntry = errors.New("archive entry already exists")
	ErrFinalized      = errors.New("archive already finalized")
)

type Option func(*Zip)

// WithModified stamps every entry with the same time so identical input gives identical bytes.
func WithModified(t time.Time) Option {
	return func(z *Zip) {
		z.modified = t
	}
}

// Zip builds an in-memory archive. It is used by one run and is not safe for concurrent use.
type Zip struct {
	buf       bytes.Buffer
	writer    *zip.Writer
	names     map[string]struct{}
	modified  time.Time
	finalized bool
}

func NewZip(opts ...Option) *Zip {
	z := &Zip{
		names:    map[string]struct{}{},
		modified: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(z)
	}
	z.writer = zip.NewWriter(&z.buf)
	return z
}

func (z *Zip) AddEntry(name string, data []byte) error {
	if z.finalized {
		return ErrFinalized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := z.names[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}

	w, err := z.writer.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: z.modified,
	})
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	z.names[name] = struct{}{}
	return nil
}

func (z *Zip) Finalize(ctx context.Context) ([]byte, error) {
	if z.finalized {
		return nil, ErrFinalized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	z.finalized = true
	if err := z.writer.Close(); err != nil {
		return nil, err
	}
	return z.buf.Bytes(), nil
}
