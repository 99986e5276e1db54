package makeultra

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/snappy"
)

// HashStore holds the two hash maps described in spec §3/§4.5: saved, an
// immutable snapshot of the previous run, and current, the mutable map
// this run updates and eventually persists.
type HashStore struct {
	saved map[string]uint64

	mu      sync.Mutex
	current map[string]uint64
}

// LoadHashStore loads the cache file at path (spec §4.5). A missing file
// is not an error — saved starts empty. A corrupt file is a warning, not
// a fatal error; saved again starts empty. current is a clone of saved
// unless forceRebuild is set, in which case it starts empty (spec §3).
func LoadHashStore(path string, forceRebuild bool) (*HashStore, error) {
	saved := make(map[string]uint64)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		m, decodeErr := decodeHashes(data)
		if decodeErr != nil {
			fmt.Fprintf(os.Stderr, "makeultra: warning: cache %q is corrupt, starting fresh: %v\n", path, decodeErr)
		} else {
			saved = m
		}
	case os.IsNotExist(err):
		// absent cache is not an error
	default:
		return nil, fmt.Errorf("reading cache %q: %w", path, err)
	}

	current := make(map[string]uint64, len(saved))
	if !forceRebuild {
		for k, v := range saved {
			current[k] = v
		}
	}

	return &HashStore{saved: saved, current: current}, nil
}

// decodeHashes tries the Snappy-compressed format first; if decompression
// fails, it falls back to interpreting data as the legacy uncompressed
// encoding (spec §4.5/§6).
func decodeHashes(data []byte) (map[string]uint64, error) {
	if decompressed, err := snappy.Decode(nil, data); err == nil {
		if m, decErr := gobDecodeHashes(decompressed); decErr == nil {
			return m, nil
		}
	}
	return gobDecodeHashes(data)
}

func gobDecodeHashes(data []byte) (map[string]uint64, error) {
	m := make(map[string]uint64)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// Saved returns the hash recorded for path in the previous run, if any.
func (s *HashStore) Saved(path string) (uint64, bool) {
	h, ok := s.saved[path]
	return h, ok
}

// Insert is a thread-safe upsert of path's hash into the current store
// (spec §4.5).
func (s *HashStore) Insert(path string, h uint64) {
	s.mu.Lock()
	s.current[path] = h
	s.mu.Unlock()
}

// Persist writes the current store to path, Snappy-compressed, unless it
// is empty or dryRun is set (spec §4.5). Write errors are fatal (spec §7).
func (s *HashStore) Persist(path string, dryRun bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.current) == 0 || dryRun {
		return nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s.current); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	compressed := snappy.Encode(nil, buf.Bytes())
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("writing cache %q: %w", path, err)
	}
	return nil
}

// HashFile returns the 64-bit content hash of path's bytes (spec §4.5
// hash_of). Failure to read returns ok=false; the caller decides what
// that means for dirtiness (spec §4.6 step 2 treats it as clean).
func HashFile(path string) (h uint64, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	x := xxhash.New()
	if _, err := io.Copy(x, f); err != nil {
		return 0, false
	}
	return x.Sum64(), true
}
