package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	quoteFileSuffix = ".json"
	cacheDirPerm    = 0o750
	quoteFilePerm   = 0o600
)

// FileStore keeps one JSON file per quote so the last known price
// survives between CLI runs. Safe for concurrent use within one process.
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time

	mu sync.RWMutex
}

// NewFileStore opens (creating if needed) a quote cache rooted at dir.
// A non-positive ttl means DefaultTTLSeconds.
func NewFileStore(dir string, ttl time.Duration, opts ...StoreOption) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("price cache directory is empty")
	}
	if err := os.MkdirAll(dir, cacheDirPerm); err != nil {
		return nil, fmt.Errorf("creating price cache directory %s: %w", dir, err)
	}
	o := applyStoreOptions(opts)
	return &FileStore{dir: dir, ttl: orDefaultTTL(ttl), now: o.now}, nil
}

// Get returns the live entry for key.
func (s *FileStore) Get(key string) (*Entry, error) {
	e, err := s.GetStale(key)
	if err != nil {
		return nil, err
	}
	if e.ExpiredAt(s.now()) {
		return nil, ErrCacheExpired
	}
	return e, nil
}

// GetStale reads the entry for key whether or not it has expired.
func (s *FileStore) GetStale(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := readEntry(s.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCacheNotFound
	}
	return e, err
}

// Set replaces the file for key. The write goes to a sibling temp file
// first so readers never see a half-written quote.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if key == "" {
		return ErrInvalidCacheKey
	}
	raw, err := json.Marshal(NewEntry(key, data, s.ttl, s.now()))
	if err != nil {
		return fmt.Errorf("encoding cached quote: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	final := s.pathFor(key)
	tmp := final + ".tmp"
	if err = os.WriteFile(tmp, raw, quoteFilePerm); err != nil {
		return fmt.Errorf("writing cached quote: %w", err)
	}
	if err = os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("committing cached quote: %w", err)
	}
	return nil
}

// Prune removes quote files expired for longer than grace. Files that
// cannot be parsed are removed too.
func (s *FileStore) Prune(grace time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("listing price cache: %w", err)
	}

	now := s.now()
	n := 0
	for _, de := range names {
		if de.IsDir() || !strings.HasSuffix(de.Name(), quoteFileSuffix) {
			continue
		}
		path := filepath.Join(s.dir, de.Name())
		e, readErr := readEntry(path)
		if readErr == nil && !e.prunableAt(now, grace) {
			continue
		}
		if os.Remove(path) == nil {
			n++
		}
	}
	return n, nil
}

func readEntry(path string) (*Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decoding cached quote %s: %w", filepath.Base(path), err)
	}
	return &e, nil
}

// pathFor maps a key to a file name; GenerateKey digests are already
// safe, other keys have separators replaced.
func (s *FileStore) pathFor(key string) string {
	name := strings.NewReplacer("/", "_", `\`, "_", ":", "_").Replace(key)
	return filepath.Join(s.dir, name+quoteFileSuffix)
}
