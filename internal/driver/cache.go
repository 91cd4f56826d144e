package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"conform/internal/ast"
	"conform/internal/diag"
	"conform/internal/rules"
	"conform/internal/source"
	"conform/internal/validate"
	"conform/internal/version"
)

// Current schema version - increment when CachedFile format changes
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache хранит результаты проверки файлов на диске, ключ:
// хеш содержимого и набора правил диалекта.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedProblem is a problem without its file binding.
type CachedProblem struct {
	Node    ast.NodeID
	Start   uint32
	End     uint32
	Rule    string
	Message string
}

// CachedFile is the stored outcome of checking one file that parsed cleanly.
type CachedFile struct {
	Schema   uint16
	Problems []CachedProblem
}

// OpenDiskCache initializes a cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
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

// OpenDiskCacheAt initializes a cache rooted at dir.
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
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachedFile) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		_ = os.Remove(tmp)
	}()

	payload.Schema = cacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry or one written by another schema is
// a miss, not an error.
func (c *DiskCache) Get(key Digest) (*CachedFile, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var out CachedFile
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, false, err
	}
	if out.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

// Fingerprint identifies what a validator reports: its composed rule
// sequence, the catalogue revision and the build that implements the rules.
func Fingerprint(v *validate.Validator) Digest {
	build := version.Collect()
	return fingerprintOf(v.Names(), rules.Revision, build.Version+"+"+build.GitCommit)
}

func fingerprintOf(names []string, revision int, build string) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte("rev " + strconv.Itoa(revision) + "\n"))
	_, _ = h.Write([]byte("build " + build + "\n"))
	_, _ = h.Write([]byte(strings.Join(names, "\n")))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey: H(schema || validator fingerprint || content hash).
func cacheKey(fingerprint Digest, content [32]byte) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(cacheSchemaVersion >> 8), byte(cacheSchemaVersion)})
	_, _ = h.Write(fingerprint[:])
	_, _ = h.Write(content[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func toCached(problems []diag.Problem) *CachedFile {
	out := &CachedFile{Problems: make([]CachedProblem, len(problems))}
	for i, p := range problems {
		out.Problems[i] = CachedProblem{
			Node:    p.Node,
			Start:   p.Span.Start,
			End:     p.Span.End,
			Rule:    p.Rule,
			Message: p.Message,
		}
	}
	return out
}

func fromCached(cf *CachedFile, file source.FileID) []diag.Problem {
	if len(cf.Problems) == 0 {
		return nil
	}
	out := make([]diag.Problem, len(cf.Problems))
	for i, p := range cf.Problems {
		out[i] = diag.Problem{
			Node:    p.Node,
			Span:    source.Span{File: file, Start: p.Start, End: p.End},
			Rule:    p.Rule,
			Message: p.Message,
		}
	}
	return out
}
