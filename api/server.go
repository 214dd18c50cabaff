// Package api serves contracts and individual frames over HTTP so a
// composition can be scrubbed without rendering it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/matt-g-everett/framecast/raster"
	"github.com/matt-g-everett/framecast/scene"
)

type composerKey struct {
	id  string
	cfg scene.Config
}

type Api struct {
	registry *scene.Registry
	raster   *raster.Rasterizer
	logger   *slog.Logger
	mux      *http.ServeMux

	mu        sync.Mutex
	composers map[composerKey]scene.Composer
}

// NewApi routes the registry. Static, when not empty, is a directory served
// at the root for a browser client.
func NewApi(registry *scene.Registry, rz *raster.Rasterizer, static string, logger *slog.Logger) *Api {
	a := new(Api)
	a.registry = registry
	a.raster = rz
	a.logger = logger
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.composers = make(map[composerKey]scene.Composer)

	a.mux = http.NewServeMux()
	a.mux.HandleFunc("GET /api/compositions", a.listCompositions)
	a.mux.HandleFunc("GET /api/compositions/{id}", a.getComposition)
	a.mux.HandleFunc("GET /api/compositions/{id}/frames/{frame}", a.getFrame)
	a.mux.HandleFunc("GET /api/compositions/{id}/frames/{frame}/png", a.getFramePNG)
	if static != "" {
		a.mux.Handle("/", http.FileServer(http.Dir(static)))
	}
	return a
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a.mux.ServeHTTP(w, r)
	a.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
}

// Serve listens on addr until ctx is done.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: a, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Api) composer(r *http.Request) (scene.Contract, scene.Composer, error) {
	id := r.PathValue("id")
	c, err := a.registry.Contract(id)
	if err != nil {
		return scene.Contract{}, nil, err
	}
	cfg := c.Defaults
	query := r.URL.Query()
	if q := query.Get("quality"); q != "" {
		if cfg.Quality, err = scene.ParseQuality(q); err != nil {
			return scene.Contract{}, nil, err
		}
	}
	if e := query.Get("easing"); e != "" {
		cfg.Easing = e
	}

	key := composerKey{id: id, cfg: cfg}
	a.mu.Lock()
	defer a.mu.Unlock()
	if comp, ok := a.composers[key]; ok {
		return c, comp, nil
	}
	c, comp, err := a.registry.ResolveWith(id, cfg)
	if err != nil {
		return scene.Contract{}, nil, err
	}
	a.composers[key] = comp
	return c, comp, nil
}

func (a *Api) frame(r *http.Request) (scene.Contract, []scene.Primitive, int, error) {
	frame, err := strconv.Atoi(r.PathValue("frame"))
	if err != nil {
		return scene.Contract{}, nil, 0, &scene.InvalidConfigError{Field: "frame", Value: r.PathValue("frame"), Reason: "expected an integer"}
	}
	c, comp, err := a.composer(r)
	if err != nil {
		return scene.Contract{}, nil, 0, err
	}
	return c, comp.Compose(frame), c.ClampFrame(frame), nil
}

func (a *Api) listCompositions(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, a.registry.Contracts())
}

func (a *Api) getComposition(w http.ResponseWriter, r *http.Request) {
	c, err := a.registry.Contract(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, c)
}

func (a *Api) getFrame(w http.ResponseWriter, r *http.Request) {
	_, prims, frame, err := a.frame(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("X-Frame", strconv.Itoa(frame))
	a.writeJSON(w, prims)
}

func (a *Api) getFramePNG(w http.ResponseWriter, r *http.Request) {
	c, prims, frame, err := a.frame(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Frame", strconv.Itoa(frame))
	if err := a.raster.EncodePNG(w, c, prims); err != nil {
		a.logger.Error("encode frame", "composition", c.ID, "frame", frame, "err", err)
	}
}

func (a *Api) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encode response", "err", err)
	}
}

func (a *Api) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var unknown *scene.UnknownCompositionError
	var invalid *scene.InvalidConfigError
	switch {
	case errors.As(err, &unknown):
		status = http.StatusNotFound
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
