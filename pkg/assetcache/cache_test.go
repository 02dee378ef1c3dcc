package assetcache

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/mytodo/pkg/logger"
	"tableflip.dev/mytodo/pkg/web"
)

type origin struct {
	down  bool
	hits  map[string]int
	files map[string]string
}

func (o *origin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if o.hits == nil {
		o.hits = map[string]int{}
	}
	o.hits[r.URL.Path]++
	if o.down {
		http.Error(w, "down", http.StatusBadGateway)
		return
	}
	body, ok := o.files[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = io.WriteString(w, body)
}

func get(t *testing.T, c *Cache, path string, accept string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, c, http.MethodGet, path, accept)
}

func do(t *testing.T, c *Cache, method, path string, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, req)
	return rec
}

func newCache(t *testing.T, base string, o *origin, version string) *Cache {
	t.Helper()
	c, err := New(base, version, o, WithLogger(logger.Discard()), WithPrecache("/index.html", "/app.css", "/missing.js"))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCacheFirst(t *testing.T) {
	o := &origin{files: map[string]string{"/app.js": "v1"}}
	c := newCache(t, t.TempDir(), o, "")

	if rec := get(t, c, "/app.js", ""); rec.Body.String() != "v1" || rec.Header().Get("X-Asset-Cache") != "miss" {
		t.Fatalf("first fetch = %q %q", rec.Body.String(), rec.Header().Get("X-Asset-Cache"))
	}
	o.files["/app.js"] = "v2"
	if rec := get(t, c, "/app.js", ""); rec.Body.String() != "v1" || rec.Header().Get("X-Asset-Cache") != "hit" {
		t.Fatalf("cached fetch = %q", rec.Body.String())
	}
	if o.hits["/app.js"] != 1 {
		t.Fatalf("origin hit %d times", o.hits["/app.js"])
	}
}

func TestOnlySuccessIsCached(t *testing.T) {
	o := &origin{files: map[string]string{}}
	c := newCache(t, t.TempDir(), o, "")
	if rec := get(t, c, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
	get(t, c, "/nope", "")
	if o.hits["/nope"] != 2 {
		t.Fatalf("404 was cached")
	}
}

func TestInstallAndDocumentFallback(t *testing.T) {
	o := &origin{files: map[string]string{"/index.html": "<html>app</html>", "/app.css": "body{}"}}
	c := newCache(t, t.TempDir(), o, "")
	n, err := c.Install(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("Install = %d, %v", n, err)
	}

	o.down = true
	if rec := get(t, c, "/app.css", ""); rec.Body.String() != "body{}" {
		t.Fatalf("precached asset not served offline")
	}
	rec := get(t, c, "/archive", "text/html")
	if rec.Code != http.StatusOK || rec.Body.String() != "<html>app</html>" || rec.Header().Get("X-Asset-Cache") != "fallback" {
		t.Fatalf("document fallback = %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, c, "/data.json", "application/json"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("non-document offline = %d", rec.Code)
	}
}

func TestActivatePrunesOldVersions(t *testing.T) {
	base := t.TempDir()
	o := &origin{files: map[string]string{"/index.html": "old"}}
	old := newCache(t, base, o, "mytodo-v0.9.0")
	old.Install(context.Background())

	cur := newCache(t, base, o, DefaultVersion)
	pruned, err := cur.Activate()
	if err != nil {
		t.Fatal(err)
	}
	if len(pruned) == 0 {
		t.Fatalf("nothing pruned")
	}
	if _, err := os.Stat(filepath.Join(base, "mytodo-v0.9.0")); !os.IsNotExist(err) {
		t.Fatalf("old version still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, DefaultVersion)); err != nil {
		t.Fatalf("current version removed: %v", err)
	}
}

func TestHeadMissCachesTheBody(t *testing.T) {
	o := &origin{files: map[string]string{"/app.js": "v1"}}
	c := newCache(t, t.TempDir(), o, "")

	rec := do(t, c, http.MethodHead, "/app.js", "")
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("HEAD = %d with %d bytes", rec.Code, rec.Body.Len())
	}
	rec = get(t, c, "/app.js", "")
	if rec.Body.String() != "v1" || rec.Header().Get("X-Asset-Cache") != "hit" {
		t.Fatalf("GET after HEAD = %q %q", rec.Body.String(), rec.Header().Get("X-Asset-Cache"))
	}
}

func TestHeadWithEmbeddedAssets(t *testing.T) {
	c, err := New(t.TempDir(), "", web.Assets(), WithLogger(logger.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	if rec := do(t, c, http.MethodHead, "/app.js", ""); rec.Code != http.StatusOK {
		t.Fatalf("HEAD = %d", rec.Code)
	}
	rec := get(t, c, "/app.js", "")
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("GET after HEAD = %d with %d bytes", rec.Code, rec.Body.Len())
	}
}

func TestInstallSkipsFailedPaths(t *testing.T) {
	o := &origin{files: map[string]string{"/index.html": "<html>app</html>"}}
	c, err := New(t.TempDir(), "", o, WithLogger(logger.Discard()), WithPrecache("/index.html", "/missing.js"))
	if err != nil {
		t.Fatal(err)
	}
	if n, err := c.Install(context.Background()); err != nil || n != 1 {
		t.Fatalf("Install = %d, %v", n, err)
	}

	o.files["/missing.js"] = "late"
	if rec := get(t, c, "/missing.js", ""); rec.Body.String() != "late" || rec.Header().Get("X-Asset-Cache") != "miss" {
		t.Fatalf("failed precache was stored: %q %q", rec.Body.String(), rec.Header().Get("X-Asset-Cache"))
	}

	o.down = true
	down, err := New(t.TempDir(), "", o, WithLogger(logger.Discard()), WithPrecache("/index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if n, err := down.Install(context.Background()); err != nil || n != 0 {
		t.Fatalf("Install with origin down = %d, %v", n, err)
	}
}
