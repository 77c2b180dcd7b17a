package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/healthtab/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix selects zstd compression for a FileStore path.
const CompressedSuffix = ".zst"

// FileStore keeps the state document in a single JSON file. Saves go
// through a temp file in the same directory and a rename, so a crash
// mid-write leaves the previous document intact.
type FileStore struct {
	path    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewFileStore returns a store for path. Paths ending in ".zst" are
// written zstd-compressed.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if strings.HasSuffix(path, CompressedSuffix) {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			enc.Close()
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		s.encoder, s.decoder = enc, dec
	}
	return s, nil
}

func (s *FileStore) Path() string { return s.path }

// Close releases the zstd codec, if any.
func (s *FileStore) Close() error {
	if s.decoder != nil {
		s.decoder.Close()
	}
	if s.encoder != nil {
		return s.encoder.Close()
	}
	return nil
}

// Load reads the document. A missing file yields a fresh state. A file
// that cannot be decoded is moved aside to "<path>.corrupt" so the next
// save does not overwrite it, and an error wrapping ErrCorrupt is returned.
func (s *FileStore) Load(ctx context.Context) (*domain.UserState, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadError(err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewUserState(), nil
		}
		return nil, loadError(err)
	}

	if s.decoder != nil {
		data, err = s.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, loadError(s.quarantine(fmt.Errorf("%w: decompressing: %v", ErrCorrupt, err)))
		}
	}

	state, err := decodeDocument(data)
	if err != nil {
		return nil, loadError(s.quarantine(err))
	}
	return state, nil
}

// Save validates s and atomically replaces the file with its encoding.
func (s *FileStore) Save(ctx context.Context, state *domain.UserState) error {
	if err := ctx.Err(); err != nil {
		return saveError(err)
	}
	if err := state.Validate(); err != nil {
		return saveError(fmt.Errorf("refusing to write invalid state: %w", err))
	}

	out := state.Clone()
	out.Normalize()
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return saveError(fmt.Errorf("encoding state: %w", err))
	}
	if s.encoder != nil {
		data = s.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
	}

	if err := writeAtomic(s.path, data); err != nil {
		return saveError(err)
	}
	return nil
}

func (s *FileStore) quarantine(cause error) error {
	aside := s.path + ".corrupt"
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("%w (could not move aside: %v)", cause, err)
	}
	return fmt.Errorf("%w (moved to %s)", cause, aside)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
