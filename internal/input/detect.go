package input

import "bytes"

// Format is the compression format of an input stream.
type Format int

const (
	Plain Format = iota
	Gzip
	Zstd
	Xz
	Bzip2
)

func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Xz:
		return "xz"
	case Bzip2:
		return "bzip2"
	default:
		return "unknown"
	}
}

var magics = []struct {
	format Format
	magic  []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{Bzip2, []byte{'B', 'Z', 'h'}},
}

// sniffLen is the number of leading bytes Detect needs.
const sniffLen = 6

// Detect identifies the compression format from the first bytes of a stream.
// Anything unrecognized is Plain.
func Detect(header []byte) Format {
	for _, m := range magics {
		if bytes.HasPrefix(header, m.magic) {
			return m.format
		}
	}
	return Plain
}
