package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"knitchart/internal/pattern"
	"knitchart/internal/stitch"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest identifies a cached chart.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// CacheKey hashes everything a chart depends on: the file content, the
// vocabulary it was resolved against and the token limit.
func CacheKey(content [32]byte, vocabFingerprint string, maxTokens int) Digest {
	h := sha256.New()
	h.Write(content[:])
	h.Write([]byte(vocabFingerprint))
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(max(maxTokens, 0))) //nolint:gosec // non-negative
	h.Write(buf[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// DiskCache хранит готовые схемы на диске, по одному msgpack-файлу на ключ.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of a successfully charted pattern.
type DiskPayload struct {
	Schema uint16                `msgpack:"schema"`
	Path   string                `msgpack:"path"`
	Rows   [][]string            `msgpack:"rows"`
	Cells  [][]stitch.Definition `msgpack:"cells"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	// подкаталог "charts", чтобы DropAll не задевал чужие файлы
	return filepath.Join(c.dir, "charts", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or one written with another schema
// version is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached chart.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	charts := filepath.Join(c.dir, "charts")
	// переименуем каталог и удалим, чтобы параллельный Get не увидел половину
	old := charts + ".old-" + time.Now().Format("20060102150405.000000")
	if err := os.Rename(charts, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func chartToDiskPayload(res *ChartResult) *DiskPayload {
	return &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   res.Path,
		Rows:   res.Rows,
		Cells:  res.Grid.Cells(),
	}
}

func lookupCache(c *DiskCache, key Digest, res *ChartResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	var payload DiskPayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		return false, err
	}
	grid, err := pattern.NewGrid(payload.Cells)
	if err != nil {
		return false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	res.Rows = payload.Rows
	res.Grid = grid
	res.Cached = true
	return true, nil
}

func storeCache(c *DiskCache, key Digest, res *ChartResult) error {
	if c == nil || res.Grid == nil {
		return nil
	}
	return c.Put(key, chartToDiskPayload(res))
}
