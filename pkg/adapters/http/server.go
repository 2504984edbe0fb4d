// Package http exposes the wizard engine over HTTP: one GET and one POST
// handler per localized flow page, mounted straight from the route tree.
//
// The adapter owns navigation only. It answers JSON state summaries on GET
// and redirects on POST; rendering the actual pages is the surrounding
// application's concern.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	parcours "github.com/parcours-dev/parcours"
	"github.com/parcours-dev/parcours/internal/logging"
	"github.com/parcours-dev/parcours/pkg/domain"
	"github.com/parcours-dev/parcours/pkg/routing"
)

// SessionFunc extracts the authenticated session identifier from a request.
// Authentication itself lives outside this module; the default falls back
// to an anonymous cookie so the server works standalone.
type SessionFunc func(w http.ResponseWriter, r *http.Request) string

const sessionCookie = "parcours_session"

func cookieSession(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Server mounts wizard navigation handlers for one engine.
type Server struct {
	engine  *parcours.Engine
	session SessionFunc
	logger  *slog.Logger
	metrics *metrics
}

// Option configures the Server.
type Option func(*Server)

// WithSessionFunc injects the surrounding application's session extraction.
func WithSessionFunc(fn SessionFunc) Option {
	return func(s *Server) {
		s.session = fn
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// matcher negotiates only for the language-less root redirect; every flow
// URL carries its language explicitly.
var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// NewHandler builds the HTTP handler for the engine: the root language
// redirect, one landing page per language (which mints a tab id), GET/POST
// handlers for every localized flow page, plus health and metrics.
func NewHandler(engine *parcours.Engine, opts ...Option) http.Handler {
	s := &Server{
		engine:  engine,
		session: cookieSession,
		logger:  logging.NewNop(),
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.handler())

	flow := engine.Flow()
	startPage := flow.Routes[flow.Initial]

	for _, lang := range domain.Languages() {
		lang := lang
		r.Get("/"+string(lang), s.handleLanding(lang))

		for state, page := range flow.Routes {
			node, err := engine.Resolver().GetByFile(page)
			if err != nil {
				// New already validated the flow; reaching this is a bug.
				panic(err)
			}
			pattern := routing.ChiPattern(node.Paths[lang])
			r.Get(pattern, s.handleStepGet(lang, state, page, startPage))
			r.Post(pattern, s.handleStepPost(lang, page, startPage))
		}
	}

	return r
}

// handleRoot redirects the language-less root to a language home using
// Accept-Language negotiation. Flow navigation never negotiates; this is
// the only place a language is ever guessed.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	tag, _ := language.MatchStrings(matcher, r.Header.Get("Accept-Language"))
	target := "/" + string(domain.LanguageEN)
	if base, _ := tag.Base(); base.String() == "fr" {
		target = "/" + string(domain.LanguageFR)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// handleLanding mints a fresh tab id and redirects into the flow start, so
// a browser entering at /en or /fr gets its per-tab token without any
// client-side logic.
func (s *Server) handleLanding(lang domain.Language) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow := s.engine.Flow()
		tid := uuid.NewString()
		target, err := s.engine.ResolveURL(flow.Routes[flow.Initial], lang, nil, url.Values{"tid": {tid}})
		if err != nil {
			s.internalError(w, "resolve start url", err)
			return
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// stepView is the JSON state summary answered on GET.
type stepView struct {
	State    domain.StateName `json:"state"`
	Page     domain.PageID    `json:"page"`
	Language domain.Language  `json:"language"`
	TabID    string           `json:"tab_id"`
	Terminal bool             `json:"terminal"`
}

func (s *Server) handleStepGet(lang domain.Language, state domain.StateName, page, startPage domain.PageID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := r.URL.Query().Get("tid")
		if tid == "" {
			s.badRequest(w, "missing_tid", "flow requests require a tid query parameter")
			return
		}
		sessionID := s.session(w, r)

		var snap *domain.Snapshot
		var err error
		if page == startPage {
			// First visit to the start page is what creates the entry.
			snap, err = s.engine.LoadOrCreate(r.Context(), sessionID, tid)
		} else {
			snap, err = s.engine.Load(r.Context(), sessionID, tid)
			if errors.Is(err, domain.ErrSnapshotNotFound) {
				s.redirectToStart(w, r, lang, startPage, tid)
				return
			}
		}
		if err != nil {
			s.internalError(w, "load snapshot", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stepView{
			State:    snap.Value,
			Page:     page,
			Language: lang,
			TabID:    tid,
			Terminal: s.engine.Flow().Terminal(snap.Value),
		})
	}
}

func (s *Server) handleStepPost(lang domain.Language, page, startPage domain.PageID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := r.URL.Query().Get("tid")
		if tid == "" {
			s.badRequest(w, "missing_tid", "flow requests require a tid query parameter")
			return
		}

		event, err := domain.ParseEvent(r.FormValue("action"))
		if err != nil {
			s.badRequest(w, "unrecognized_action", err.Error())
			return
		}

		sessionID := s.session(w, r)
		snap, err := s.engine.Dispatch(r.Context(), sessionID, tid, event)
		if err != nil {
			var actionErr *domain.UnrecognizedActionError
			switch {
			case errors.Is(err, domain.ErrSnapshotNotFound):
				s.redirectToStart(w, r, lang, startPage, tid)
			case errors.As(err, &actionErr):
				s.badRequest(w, "unrecognized_action", actionErr.Error())
			default:
				s.internalError(w, "dispatch", err)
			}
			return
		}

		s.metrics.transitions.WithLabelValues(string(event), string(snap.Value)).Inc()

		target, err := s.engine.RouteFor(snap, lang, nil, url.Values{"tid": {tid}})
		if err != nil {
			s.internalError(w, "resolve redirect", err)
			return
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// redirectToStart recovers an unknown or expired tab id by sending the user
// back to the flow start, flagged so the UI can explain the restart.
func (s *Server) redirectToStart(w http.ResponseWriter, r *http.Request, lang domain.Language, startPage domain.PageID, tid string) {
	s.metrics.restarts.Inc()
	s.logger.Info("unknown tab id, restarting flow", "tab_id", tid, "lang", lang)

	target, err := s.engine.ResolveURL(startPage, lang, nil, url.Values{
		"tid":       {tid},
		"restarted": {"true"},
	})
	if err != nil {
		s.internalError(w, "resolve start url", err)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) badRequest(w http.ResponseWriter, code, detail string) {
	s.metrics.badRequests.WithLabelValues(code).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": code, "detail": detail})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "err", err)
	http.Error(w, fmt.Sprintf("%s: internal error", op), http.StatusInternalServerError)
}
