package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matt-g-everett/framecast/compositions"
	"github.com/matt-g-everett/framecast/raster"
	"github.com/matt-g-everett/framecast/scene"
)

func newServer(t *testing.T, static string) *httptest.Server {
	t.Helper()
	rz, err := raster.NewRasterizer()
	if err != nil {
		t.Fatal(err)
	}
	rz.Scale = 0.1
	t.Cleanup(func() { rz.Close() })
	a := NewApi(compositions.Default(), rz, static, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(a)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

// roundTrip normalizes primitives through JSON so they compare with a
// decoded response.
func roundTrip(t *testing.T, ps []scene.Primitive) []scene.Primitive {
	t.Helper()
	b, err := json.Marshal(ps)
	if err != nil {
		t.Fatal(err)
	}
	var out []scene.Primitive
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestListCompositions(t *testing.T) {
	srv := newServer(t, "")
	resp, body := get(t, srv.URL+"/api/compositions")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var cs []scene.Contract
	if err := json.Unmarshal(body, &cs); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cs, compositions.Default().Contracts()) {
		t.Fatalf("expected the registry contracts, got %+v", cs)
	}

	resp, body = get(t, srv.URL+"/api/compositions/big-bang")
	var c scene.Contract
	if err := json.Unmarshal(body, &c); err != nil || resp.StatusCode != http.StatusOK || c.ID != "big-bang" {
		t.Fatalf("expected the big-bang contract, got %d %s", resp.StatusCode, body)
	}
}

func TestFrameMatchesCompose(t *testing.T) {
	srv := newServer(t, "")
	for _, tc := range []struct {
		id      string
		frame   string
		quality scene.Quality
		compose int
	}{
		{"nn-training", "120", scene.Final, 120},
		{"galaxy-formation", "45?quality=draft", scene.Draft, 45},
		{"evolution", "-50", scene.Final, 0},
		{"financial-markets", "9999", scene.Final, 239},
		{"black-hole", "180", scene.Final, 180},
	} {
		resp, body := get(t, srv.URL+"/api/compositions/"+tc.id+"/frames/"+tc.frame)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", tc.id, resp.StatusCode, body)
		}
		var got []scene.Primitive
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatal(err)
		}
		_, comp, err := compositions.Default().ResolveWith(tc.id, scene.Config{Quality: tc.quality})
		if err != nil {
			t.Fatal(err)
		}
		if want := roundTrip(t, comp.Compose(tc.compose)); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: frame %s differs from Compose(%d)", tc.id, tc.frame, tc.compose)
		}
		if h := resp.Header.Get("X-Frame"); h == "" {
			t.Fatalf("%s: expected the clamped frame header", tc.id)
		}
	}
}

func TestFrameEasing(t *testing.T) {
	srv := newServer(t, "")
	_, body := get(t, srv.URL+"/api/compositions/bar-race/frames/15?easing=in-quad")
	var got []scene.Primitive
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	_, comp, err := compositions.Default().ResolveWith("bar-race", scene.Config{Quality: scene.Final, Easing: "in-quad"})
	if err != nil {
		t.Fatal(err)
	}
	if want := roundTrip(t, comp.Compose(15)); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected the eased composer, got %s", body)
	}
}

func TestFramePNG(t *testing.T) {
	srv := newServer(t, "")
	resp, body := get(t, srv.URL+"/api/compositions/star-formation/frames/200/png")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("expected a png, got %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 108 || cfg.Height != 192 {
		t.Fatalf("expected 108x192 at scale 0.1, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestErrors(t *testing.T) {
	srv := newServer(t, "")
	for _, tc := range []struct {
		path   string
		status int
	}{
		{"/api/compositions/nope", http.StatusNotFound},
		{"/api/compositions/nope/frames/1", http.StatusNotFound},
		{"/api/compositions/big-bang/frames/abc", http.StatusBadRequest},
		{"/api/compositions/big-bang/frames/1?quality=ultra", http.StatusBadRequest},
		{"/api/compositions/bar-race/frames/1?easing=wobble", http.StatusBadRequest},
		{"/api/compositions/big-bang/frames/1.5/png", http.StatusBadRequest},
	} {
		resp, body := get(t, srv.URL+tc.path)
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		var e map[string]string
		if err := json.Unmarshal(body, &e); err != nil || e["error"] == "" {
			t.Fatalf("%s: expected a JSON error body, got %s", tc.path, body)
		}
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>scrub</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := newServer(t, dir)
	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK || string(body) != "<h1>scrub</h1>" {
		t.Fatalf("expected the static index, got %d %s", resp.StatusCode, body)
	}
}
