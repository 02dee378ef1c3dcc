// Package assetcache serves static assets cache-first so the web UI keeps
// working when the origin is unavailable. Each cache version lives in its
// own diskv directory; activating a version prunes the others.
package assetcache

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/sirupsen/logrus"
)

// DefaultVersion names the current cache.
const DefaultVersion = "mytodo-v1.0.0"

// IndexPath is served for document requests the origin cannot answer.
const IndexPath = "/index.html"

type Cache struct {
	version  string
	basePath string
	precache []string
	origin   http.Handler
	log      logrus.FieldLogger
	d        *diskv.Diskv
}

type Option func(*Cache)

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Cache) { c.log = log }
}

// WithPrecache sets the paths fetched by Install.
func WithPrecache(paths ...string) Option {
	return func(c *Cache) { c.precache = append([]string(nil), paths...) }
}

func New(basePath, version string, origin http.Handler, opts ...Option) (*Cache, error) {
	if basePath == "" {
		return nil, errors.New("assetcache: base path unknown")
	}
	if version == "" {
		version = DefaultVersion
	}
	c := &Cache{
		version:  version,
		basePath: basePath,
		origin:   origin,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	dir := filepath.Join(basePath, version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("assetcache: ensure %s: %w", dir, err)
	}
	c.d = diskv.New(diskv.Options{
		BasePath:     dir,
		TempDir:      filepath.Join(basePath, ".tmp-"+version),
		CacheSizeMax: 4 * 1024 * 1024,
	})
	return c, nil
}

func (c *Cache) Version() string { return c.version }

type entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

func key(path string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(path))
}

func (c *Cache) lookup(path string) (*entry, bool) {
	data, err := c.d.Read(key(path))
	if err != nil {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.log.WithError(err).WithField("path", path).Warn("dropping unreadable cache entry")
		_ = c.d.Erase(key(path))
		return nil, false
	}
	return &e, true
}

func (c *Cache) put(path string, e *entry) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := c.d.Write(key(path), data); err != nil {
		c.log.WithError(err).WithField("path", path).Warn("could not cache asset")
	}
}

// fetch asks the origin for path and reports whether the origin answered.
// A 5xx is treated the same as an unreachable network.
func (c *Cache) fetch(r *http.Request) (*entry, bool) {
	if c.origin == nil {
		return nil, false
	}
	rec := newRecorder()
	c.origin.ServeHTTP(rec, r)
	if rec.status >= http.StatusInternalServerError {
		return nil, false
	}
	return &entry{Status: rec.status, ContentType: rec.header.Get("Content-Type"), Body: rec.body.Bytes()}, true
}

// Install precaches the configured paths. Failures are logged and counted
// but do not stop the install.
func (c *Cache) Install(ctx context.Context) (cached int, err error) {
	var failed []string
	for _, path := range c.precache {
		if err := ctx.Err(); err != nil {
			return cached, err
		}
		req, rerr := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if rerr != nil {
			failed = append(failed, path)
			continue
		}
		e, ok := c.fetch(req)
		if !ok || e.Status != http.StatusOK {
			failed = append(failed, path)
			continue
		}
		c.put(path, e)
		cached++
	}
	if len(failed) > 0 {
		c.log.WithField("paths", failed).Warn("some assets were not precached")
	}
	c.log.WithFields(logrus.Fields{"version": c.version, "cached": cached}).Info("asset cache installed")
	return cached, nil
}

// Activate removes every cache version other than this one.
func (c *Cache) Activate() ([]string, error) {
	entries, err := os.ReadDir(c.basePath)
	if err != nil {
		return nil, err
	}
	var pruned []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || name == c.version || strings.HasSuffix(name, "-"+c.version) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.basePath, name)); err != nil {
			return pruned, err
		}
		pruned = append(pruned, name)
	}
	if len(pruned) > 0 {
		c.log.WithField("pruned", pruned).Info("removed old asset caches")
	}
	return pruned, nil
}

// ServeHTTP answers GET and HEAD requests from the cache first, then the
// origin, storing successful origin responses.
func (c *Cache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if c.origin != nil {
			c.origin.ServeHTTP(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	path := r.URL.Path
	if e, ok := c.lookup(path); ok {
		write(w, r, e, "hit")
		return
	}
	// A HEAD answer has no body to cache, so a miss always fetches the GET.
	get := r.Clone(r.Context())
	get.Method = http.MethodGet
	e, ok := c.fetch(get)
	if ok {
		if e.Status == http.StatusOK {
			c.put(path, e)
		}
		write(w, r, e, "miss")
		return
	}
	if isDocument(r) {
		if index, ok := c.lookup(IndexPath); ok {
			write(w, r, index, "fallback")
			return
		}
	}
	http.Error(w, "offline and not cached", http.StatusServiceUnavailable)
}

func write(w http.ResponseWriter, r *http.Request, e *entry, state string) {
	if e.ContentType != "" {
		w.Header().Set("Content-Type", e.ContentType)
	}
	w.Header().Set("X-Asset-Cache", state)
	w.WriteHeader(e.Status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(e.Body)
	}
}

func isDocument(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Dest") == "document" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		return true
	}
	return r.URL.Path == "/" || strings.HasSuffix(r.URL.Path, ".html")
}

type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{header: http.Header{}}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(b)
}
