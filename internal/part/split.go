package part

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

type modeKind int

const (
	byCount modeKind = iota
	bySize
)

// Mode selects how a file is partitioned: into a fixed number of parts or
// into parts of a fixed size.
type Mode struct {
	kind  modeKind
	value uint64
}

// ByCount splits into exactly n parts of floor(size/n) bytes; the last part
// takes the remainder.
func ByCount(n uint64) Mode { return Mode{kind: byCount, value: n} }

// BySize splits into floor(size/s) parts of s bytes; the last part takes the
// remainder, so it is never smaller than s.
func BySize(s uint64) Mode { return Mode{kind: bySize, value: s} }

func (m Mode) String() string {
	if m.kind == bySize {
		return fmt.Sprintf("size=%v", m.value)
	}
	return fmt.Sprintf("count=%v", m.value)
}

// Plan returns the number of parts and the nominal part size for a file of
// fileSize bytes. Requests that would yield no parts or empty parts fail
// with ErrInvalidPartitioning.
func Plan(fileSize uint64, mode Mode) (n, size uint64, err error) {
	if fileSize == 0 {
		return 0, 0, fmt.Errorf("%w: source file is empty", ErrInvalidPartitioning)
	}
	switch mode.kind {
	case byCount:
		n = mode.value
		if n == 0 {
			return 0, 0, fmt.Errorf("%w: part count must be at least 1", ErrInvalidPartitioning)
		}
		if n > fileSize {
			return 0, 0, fmt.Errorf("%w: %d parts requested for a %d byte file", ErrInvalidPartitioning, n, fileSize)
		}
		size = fileSize / n
	case bySize:
		size = mode.value
		if size == 0 {
			return 0, 0, fmt.Errorf("%w: part size must be at least 1", ErrInvalidPartitioning)
		}
		n = fileSize / size
		if n == 0 {
			return 0, 0, fmt.Errorf("%w: part size %d exceeds file size %d", ErrInvalidPartitioning, size, fileSize)
		}
	default:
		return 0, 0, fmt.Errorf("%w: unknown mode", ErrInvalidPartitioning)
	}
	return n, size, nil
}

type chunk struct {
	index  uint64
	offset uint64
	data   []byte
}

// partition cuts content into n chunks of size bytes, the last one running
// to the end of content.
func partition(content []byte, n, size uint64) []chunk {
	chunks := make([]chunk, 0, n)
	for i := uint64(0); i < n; i++ {
		start := i * size
		end := start + size
		if i == n-1 {
			end = uint64(len(content))
		}
		chunks = append(chunks, chunk{index: i, offset: start, data: content[start:end]})
	}
	return chunks
}

type SplitterOpts struct {
	Logger *zap.Logger
	// CleanupOnFailure removes the part files already written when a split
	// fails part way through.
	CleanupOnFailure bool
}

type Splitter struct {
	opts SplitterOpts
}

func NewSplitter(opts SplitterOpts) *Splitter {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Splitter{opts: opts}
}

// Split writes <path>.<i>.part for every part and <path>.partinfo, replacing
// any files of the same name.
func (s *Splitter) Split(path string, mode Mode) (*Metadata, error) {
	log := s.opts.Logger
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	n, size, err := Plan(uint64(len(content)), mode)
	if err != nil {
		return nil, err
	}
	log.Info("Splitting file",
		zap.String("file", path),
		zap.Uint64("parts", n),
		zap.String("part_size", humanize.IBytes(size)))

	meta := &Metadata{
		OriginalFilename: filepath.Base(path),
		PartCount:        n,
		Checksum:         Checksum(content),
		PartChecksums:    make([]uint32, 0, n),
	}

	var written []string
	fail := func(err error) (*Metadata, error) {
		if s.opts.CleanupOnFailure {
			for _, p := range written {
				if rmErr := os.Remove(p); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
					log.Warn("Failed to remove part file", zap.String("file", p), zap.Error(rmErr))
				}
			}
		}
		return nil, err
	}

	for _, c := range partition(content, n, size) {
		p := PartPath(path, c.index)
		if err := os.WriteFile(p, c.data, 0644); err != nil {
			if fi, statErr := os.Lstat(p); statErr == nil && fi.Mode().IsRegular() {
				written = append(written, p)
			}
			return fail(partErr(c.index, ErrPartWriteFailed, err))
		}
		written = append(written, p)
		sum := Checksum(c.data)
		meta.PartChecksums = append(meta.PartChecksums, sum)
		log.Debug("Wrote part",
			zap.Uint64("index", c.index),
			zap.Uint64("offset", c.offset),
			zap.Int("bytes", len(c.data)),
			zap.Uint32("crc32", sum))
	}

	mp := MetadataPath(path)
	if err := WriteMetadata(mp, meta); err != nil {
		return fail(err)
	}
	log.Info("Split complete", zap.String("metadata", mp))
	return meta, nil
}
