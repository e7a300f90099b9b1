package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/gxhash/blobstore"
	"github.com/hupe1980/gxhash/internal/stream"
)

const (
	ManifestFileName = "MANIFEST"
	CurrentFileName  = "CURRENT"
)

// conditionalPutter is implemented by stores that can refuse to overwrite,
// such as the S3 store.
type conditionalPutter interface {
	PutIfNotExists(ctx context.Context, name string, data []byte) error
}

// Store persists manifests in a blob store.
type Store struct {
	store blobstore.BlobStore
	mu    sync.Mutex
}

// NewStore creates a new manifest store.
func NewStore(store blobstore.BlobStore) *Store {
	return &Store{store: store}
}

func versionName(id uint64) string {
	return fmt.Sprintf("%s-%06d.json", ManifestFileName, id)
}

// Put encodes m in the format and compression implied by name and writes it.
func (s *Store) Put(ctx context.Context, name string, m *Manifest) error {
	data, err := encode(name, m)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, name, data)
}

// Get loads the manifest stored under name.
func (s *Store) Get(ctx context.Context, name string) (*Manifest, error) {
	b, err := s.store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer func() { _ = b.Close() }()

	r := blobstore.NewReader(ctx, b, 0)
	defer func() { _ = r.Close() }()

	return decode(name, r)
}

// Save assigns m the next version ID, writes it and points CURRENT at it.
// Stores with conditional writes reject a version that already exists.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Version = CurrentVersion
	m.ID++
	m.CreatedAt = time.Now().UTC()

	filename := versionName(m.ID)
	data, err := encode(filename, m)
	if err != nil {
		return err
	}

	if cp, ok := s.store.(conditionalPutter); ok {
		err = cp.PutIfNotExists(ctx, filename, data)
	} else {
		err = s.store.Put(ctx, filename, data)
	}
	if err != nil {
		return err
	}

	return s.store.Put(ctx, CurrentFileName, []byte(filename))
}

// Load loads the version CURRENT points at.
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	return s.LoadVersion(ctx, 0)
}

// LoadVersion loads a specific version ID. 0 means latest.
func (s *Store) LoadVersion(ctx context.Context, id uint64) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filename := versionName(id)
	if id == 0 {
		b, err := s.store.Open(ctx, CurrentFileName)
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		content, err := io.ReadAll(blobstore.NewReader(ctx, b, 0))
		_ = b.Close()
		if err != nil {
			return nil, err
		}
		filename = strings.TrimSpace(string(content))
	}

	return s.Get(ctx, filename)
}

// Versions returns the stored version IDs in ascending order.
func (s *Store) Versions(ctx context.Context) ([]uint64, error) {
	names, err := s.store.List(ctx, ManifestFileName+"-")
	if err != nil {
		return nil, err
	}
	var ids []uint64
	for _, name := range names {
		num, ok := strings.CutPrefix(name, ManifestFileName+"-")
		if !ok {
			continue
		}
		num, ok = strings.CutSuffix(num, ".json")
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(num, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DeleteVersion deletes the manifest file for the given version.
func (s *Store) DeleteVersion(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(ctx, versionName(id))
}

func encode(name string, m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	w, err := stream.NewWriter(&buf, stream.Detect(name))
	if err != nil {
		return nil, err
	}
	if err := Write(w, m, FormatFor(name)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(name string, r io.Reader) (*Manifest, error) {
	rc, err := stream.NewReader(r, stream.Detect(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Parse(rc, FormatFor(name))
}
