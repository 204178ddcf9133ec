package part

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

type CombinerOpts struct {
	Logger *zap.Logger
}

type Combiner struct {
	opts CombinerOpts
}

func NewCombiner(opts CombinerOpts) *Combiner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Combiner{opts: opts}
}

// Combine reassembles the parts described by the metadata at metadataPath.
// Parts are read from dir as <base>.<i>.part, where base is the metadata file
// name without its extension, and the result is written to dir/<base>. Nothing
// is written unless every part and the whole file pass their checksums.
func (c *Combiner) Combine(metadataPath, dir string) (string, error) {
	base, meta, content, err := c.assemble(metadataPath, dir)
	if err != nil {
		return "", err
	}
	out := filepath.Join(dir, base)
	if err := writeAtomic(out, content); err != nil {
		return "", err
	}
	c.opts.Logger.Info("File successfully combined",
		zap.String("file", out),
		zap.Uint64("parts", meta.PartCount),
		zap.String("size", humanize.IBytes(uint64(len(content)))))
	return out, nil
}

// Verify checks every part and the reassembled whole without writing output.
func (c *Combiner) Verify(metadataPath, dir string) (*Metadata, error) {
	_, meta, _, err := c.assemble(metadataPath, dir)
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func (c *Combiner) assemble(metadataPath, dir string) (string, *Metadata, []byte, error) {
	log := c.opts.Logger
	meta, err := ReadMetadata(metadataPath)
	if err != nil {
		return "", nil, nil, err
	}
	base := BaseFromMetadataPath(metadataPath)
	if base == "" {
		return "", nil, nil, fmt.Errorf("%w: %v", ErrMetadataName, metadataPath)
	}
	if base != meta.OriginalFilename {
		log.Warn("Metadata file name does not match recorded file name, using metadata file name",
			zap.String("derived", base),
			zap.String("recorded", meta.OriginalFilename))
	}

	var buf bytes.Buffer
	for i := uint64(0); i < meta.PartCount; i++ {
		p := filepath.Join(dir, PartPath(base, i))
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", nil, nil, partErr(i, ErrPartNotFound, nil)
			}
			return "", nil, nil, partErr(i, ErrPartNotFound, err)
		}
		if sum := Checksum(data); sum != meta.PartChecksums[i] {
			log.Error("Checksum error on part",
				zap.Uint64("index", i),
				zap.Uint32("expected", meta.PartChecksums[i]),
				zap.Uint32("actual", sum))
			return "", nil, nil, partErr(i, ErrPartChecksumMismatch, nil)
		}
		log.Debug("Verified part", zap.Uint64("index", i), zap.Int("bytes", len(data)))
		buf.Write(data)
	}

	content := buf.Bytes()
	if sum := Checksum(content); sum != meta.Checksum {
		log.Error("Checksum error on completed file",
			zap.Uint32("expected", meta.Checksum),
			zap.Uint32("actual", sum))
		return "", nil, nil, ErrWholeFileChecksumMismatch
	}
	return base, meta, content, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so a failed write never leaves a truncated output behind.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWriteFailed, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrOutputWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrOutputWriteFailed, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrOutputWriteFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrOutputWriteFailed, err)
	}
	return nil
}
