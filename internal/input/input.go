// Package input reads newline-separated duration expressions for batch mode.
// Files and stdin may be plain text or compressed with gzip, zstd, xz or
// bzip2; the format is detected from magic bytes, not the file name.
package input

import (
	"bufio"
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// MaxLineBytes bounds a single input line.
const MaxLineBytes = 1024 * 1024

// Open opens path for reading, decompressing it if needed. "-" means stdin,
// which is not closed by the returned reader.
func Open(path string) (io.ReadCloser, Format, error) {
	if path == "-" {
		return NewReader(io.NopCloser(os.Stdin))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, Plain, fmt.Errorf("failed to open input file: %w", err)
	}
	rc, format, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, Plain, err
	}
	return rc, format, nil
}

// NewReader wraps r with the decompressor matching its leading bytes.
// Closing the result also closes r.
func NewReader(r io.ReadCloser) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, Plain, fmt.Errorf("failed to read input header: %w", err)
	}

	format := Detect(header)
	var dec io.Reader
	var decClose func()

	switch format {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("gzip reader error: %w", err)
		}
		dec, decClose = gz, func() { gz.Close() }
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("zstd reader error: %w", err)
		}
		dec, decClose = zr, zr.Close
	case Xz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("xz reader error: %w", err)
		}
		dec = xr
	case Bzip2:
		dec = bzip2.NewReader(br)
	default:
		dec = br
	}

	return &readCloser{Reader: dec, closeDecoder: decClose, underlying: r}, format, nil
}

type readCloser struct {
	io.Reader
	closeDecoder func()
	underlying   io.Closer
}

func (rc *readCloser) Close() error {
	if rc.closeDecoder != nil {
		rc.closeDecoder()
	}
	return rc.underlying.Close()
}

// Lines calls fn for every line of r with the line terminator (and a
// trailing \r) removed. It stops early when ctx is cancelled or fn fails.
func Lines(ctx context.Context, r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input read error: %w", err)
	}
	return ctx.Err()
}
