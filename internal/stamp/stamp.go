// Package stamp writes a freshly generated random UUID to a file and
// reports it, for stamping build outputs.
package stamp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/projecteru2/core/log"
)

const (
	// Target is the mode that additionally prints BuildBanner.
	// Matched literally and case-sensitively.
	Target = "TARGET"
	// BuildBanner is printed after the uuid line when the mode is Target.
	BuildBanner = "BUILD *********************"

	defaultPerm os.FileMode = 0o644
)

// Generator produces one random identifier.
type Generator func() (uuid.UUID, error)

// Option customizes a Stamper.
type Option func(*Stamper)

// WithGenerator replaces the default uuid.NewRandom generator.
func WithGenerator(gen Generator) Option {
	return func(s *Stamper) { s.gen = gen }
}

// WithPerm sets the permission used when the output file is created.
func WithPerm(perm os.FileMode) Option {
	return func(s *Stamper) { s.perm = perm }
}

// Stamper generates identifiers, persists them and prints them to out.
type Stamper struct {
	out  io.Writer
	gen  Generator
	perm os.FileMode
}

// New creates a Stamper printing to out.
func New(out io.Writer, opts ...Option) *Stamper {
	s := &Stamper{
		out:  out,
		gen:  uuid.NewRandom,
		perm: defaultPerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stamp generates a version 4 UUID, writes its 36-character form as the
// entire content of path and prints "Generated uuid: <id>". When mode is
// Target it also prints BuildBanner. An empty mode means no mode was given.
// Nothing is printed if the file cannot be written.
func (s *Stamper) Stamp(ctx context.Context, path, mode string) (string, error) {
	logger := log.WithFunc("stamp.Stamp")

	if err := ctx.Err(); err != nil {
		return "", err
	}

	u, err := s.gen()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	id := u.String()

	if err := writeID(path, id, s.perm); err != nil {
		return "", err
	}
	logger.Debugf(ctx, "wrote %s to %s", id, path)

	if _, err := fmt.Fprintf(s.out, "Generated uuid: %s\n", id); err != nil {
		return "", fmt.Errorf("print uuid: %w", err)
	}
	if mode == Target {
		if _, err := fmt.Fprintln(s.out, BuildBanner); err != nil {
			return "", fmt.Errorf("print banner: %w", err)
		}
	}
	return id, nil
}

// writeID truncates or creates path and writes id with no trailing newline.
// The file is closed on every path; a close failure is reported if the
// write itself succeeded.
func writeID(path, id string, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err = io.WriteString(f, id); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
