// Package web serves the game over HTTP: JSON endpoints for navigation and
// slider changes plus the goal and live images. Each request loads the
// player's session from the shared store, applies one change and saves it.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/registry"
	"github.com/vovakirdan/affine-affinity/internal/render"
	"github.com/vovakirdan/affine-affinity/internal/storage"
)

const maxBodyBytes = 4 << 10

// Options configures a Handler.
type Options struct {
	CookieName   string
	CookieMaxAge time.Duration
	Render       registry.Options
}

// Handler serves the level API for every player of one store.
type Handler struct {
	store  storage.Provider
	logger *log.Logger
	opts   Options
}

// NewHandler creates a handler over store. A nil logger discards.
func NewHandler(store storage.Provider, logger *log.Logger, opts Options) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.CookieName == "" {
		opts.CookieName = "affinity_profile"
	}
	if opts.CookieMaxAge <= 0 {
		opts.CookieMaxAge = 365 * 24 * time.Hour
	}
	return &Handler{store: store, logger: logger, opts: opts}
}

// RegisterRoutes mounts the API and image routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/levels", h.levels)
	r.Post("/api/reset-all", h.resetAll)
	r.Route("/api/level/{level}", func(r chi.Router) {
		r.Get("/", h.level)
		r.Put("/params", h.setParams)
		r.Post("/slider", h.slider)
		r.Post("/reset", h.resetLevel)
	})
	r.Get("/level/{level}/{kind}.{format}", h.image)
	r.Get("/api/formats", h.formats)
}

// paramsPatch is a partial parameter update; absent fields stay as they are.
type paramsPatch struct {
	TX *float64 `json:"tx"`
	TY *float64 `json:"ty"`
	S  *float64 `json:"s"`
	G  *float64 `json:"g"`
	H  *float64 `json:"h"`
}

func (p paramsPatch) apply(cur affine.Params) affine.Params {
	for f, v := range map[affine.Field]*float64{
		affine.FieldTX: p.TX, affine.FieldTY: p.TY, affine.FieldS: p.S,
		affine.FieldG: p.G, affine.FieldH: p.H,
	} {
		if v != nil {
			cur = f.Set(cur, *v)
		}
	}
	return cur
}

type sliderRequest struct {
	Field    string  `json:"field"`
	Fraction float64 `json:"fraction"`
}

func (h *Handler) levels(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r, 1)
	if !ok {
		return
	}
	writeJSON(w, session.Levels())
}

func (h *Handler) level(w http.ResponseWriter, r *http.Request) {
	session, ok := h.levelSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, session.Snapshot())
}

func (h *Handler) setParams(w http.ResponseWriter, r *http.Request) {
	session, ok := h.levelSession(w, r)
	if !ok {
		return
	}
	var patch paramsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		http.Error(w, "invalid params", http.StatusBadRequest)
		return
	}
	h.logWrite(r.Context(), session.SetParams(r.Context(), patch.apply(session.Params())))
	writeJSON(w, session.Snapshot())
}

func (h *Handler) slider(w http.ResponseWriter, r *http.Request) {
	session, ok := h.levelSession(w, r)
	if !ok {
		return
	}
	var req sliderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "invalid slider request", http.StatusBadRequest)
		return
	}
	field, ok := affine.ParseField(req.Field)
	if !ok {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}
	v := affine.FromFraction(field, req.Fraction)
	h.logWrite(r.Context(), session.SetParam(r.Context(), field, v))
	writeJSON(w, session.Snapshot())
}

func (h *Handler) resetLevel(w http.ResponseWriter, r *http.Request) {
	session, ok := h.levelSession(w, r)
	if !ok {
		return
	}
	h.logWrite(r.Context(), session.ResetLevel(r.Context()))
	writeJSON(w, session.Snapshot())
}

func (h *Handler) resetAll(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r, 1)
	if !ok {
		return
	}
	h.logWrite(r.Context(), session.ResetAll(r.Context()))
	writeJSON(w, session.Snapshot())
}

func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	kind, err := registry.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	renderer, err := registry.Create(chi.URLParam(r, "format"), h.opts.Render)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var scene registry.Scene
	if kind == registry.KindGoal {
		level, ok := parseLevel(chi.URLParam(r, "level"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		// Goal images are the same for everybody; no profile needed.
		scene, err = render.GoalScene(level)
		if err != nil {
			http.NotFound(w, r)
			return
		}
	} else {
		session, ok := h.levelSession(w, r)
		if !ok {
			return
		}
		scene = render.SceneFor(kind, session.Snapshot())
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	if err := renderer.Render(w, scene); err != nil {
		h.logger.Error("cannot render image", "level", scene.Level, "kind", kind, "error", err)
	}
}

func (h *Handler) formats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, registry.List())
}

// levelSession loads the caller's session positioned on the {level} URL
// parameter. Unknown levels are answered with 404.
func (h *Handler) levelSession(w http.ResponseWriter, r *http.Request) (*progress.Session, bool) {
	level, ok := parseLevel(chi.URLParam(r, "level"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return h.session(w, r, level)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request, level int) (*progress.Session, bool) {
	profile := h.profile(w, r)
	logger := h.logger.With("profile", profile)
	session, err := progress.NewSession(r.Context(), h.store.Profile(profile), logger, level)
	if errors.Is(err, progress.ErrLevelNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		h.logger.Error("cannot load session", "profile", profile, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return session, true
}

// profile returns the caller's profile id, issuing a new cookie when the
// request carries none or a malformed one.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(h.opts.CookieName); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.opts.CookieMaxAge),
	})
	return id
}

func (h *Handler) logWrite(ctx context.Context, err error) {
	if err != nil {
		h.logger.Warn("progress not saved", "error", err, "request", requestID(ctx))
	}
}

func parseLevel(s string) (int, bool) {
	level, err := strconv.Atoi(s)
	if err != nil || !affine.ValidLevel(level) {
		return 0, false
	}
	return level, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
