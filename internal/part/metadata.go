// Package part splits files into numbered part files and combines them back,
// verifying each part and the reassembled whole against CRC-32 checksums kept
// in a JSON sidecar (<file>.partinfo).
package part

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	PartExt     = ".part"
	MetadataExt = ".partinfo"
)

// Metadata describes one split operation. The JSON keys are the ones the
// original part tool writes, so older .partinfo files remain readable.
type Metadata struct {
	OriginalFilename string   `json:"filename"`
	PartCount        uint64   `json:"number_of_parts"`
	Checksum         uint32   `json:"hash"`
	PartChecksums    []uint32 `json:"part_hashes"`
}

// Checksum is the classic CRC-32 (IEEE polynomial) used by zip and gzip.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

func (m *Metadata) Validate() error {
	if m.OriginalFilename == "" {
		return fmt.Errorf("%w: empty filename", ErrMetadataCorrupt)
	}
	if m.PartCount == 0 {
		return fmt.Errorf("%w: zero parts", ErrMetadataCorrupt)
	}
	if uint64(len(m.PartChecksums)) != m.PartCount {
		return fmt.Errorf("%w: %d part checksums for %d parts", ErrMetadataCorrupt, len(m.PartChecksums), m.PartCount)
	}
	return nil
}

func (m *Metadata) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(m)
}

func DecodeMetadata(r io.Reader) (*Metadata, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var m Metadata
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataCorrupt, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func WriteMetadata(path string, m *Metadata) error {
	fd, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataWriteFailed, err)
	}
	if err := m.Encode(fd); err != nil {
		fd.Close()
		os.Remove(path)
		return fmt.Errorf("%w: %v", ErrMetadataWriteFailed, err)
	}
	if err := fd.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: %v", ErrMetadataWriteFailed, err)
	}
	return nil
}

func ReadMetadata(path string) (*Metadata, error) {
	fd, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrMetadataNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrMetadataNotFound, err)
	}
	defer fd.Close()
	return DecodeMetadata(fd)
}

// PartPath returns <base>.<i>.part.
func PartPath(base string, i uint64) string {
	return fmt.Sprintf("%v.%d%v", base, i, PartExt)
}

// MetadataPath returns <base>.partinfo.
func MetadataPath(base string) string {
	return base + MetadataExt
}

// BaseFromMetadataPath drops the directory and the trailing extension of a
// metadata file name: "dir/movie.mkv.partinfo" -> "movie.mkv". It returns ""
// when the name has no extension to strip.
func BaseFromMetadataPath(p string) string {
	name := filepath.Base(p)
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.TrimSuffix(name, ext)
}
