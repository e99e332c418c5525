package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"crossfade/internal/config"
	"crossfade/internal/logging"
)

type apiServer struct {
	bind   string
	token  string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

type statusResponse struct {
	Running      bool   `json:"running"`
	SessionID    string `json:"session_id"`
	PairDBPath   string `json:"pair_db_path,omitempty"`
	LockFilePath string `json:"lock_file_path"`
	Pairings     int    `json:"pairings"`
	Negatives    int    `json:"negatives"`
	PendingSeeks int    `json:"pending_seeks"`
	InFlight     int    `json:"in_flight"`
}

type pairingPayload struct {
	TrackID int64 `json:"track_id"`
	VideoID int64 `json:"video_id"`
}

type pairingListResponse struct {
	Pairings []pairingPayload `json:"pairings"`
}

type clearResponse struct {
	Cleared       bool  `json:"cleared"`
	RemovedStored int64 `json:"removed_stored"`
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil
	}

	srv := &apiServer{
		bind:   bind,
		token:  strings.TrimSpace(cfg.Paths.APIToken),
		logger: logging.NewComponentLogger(logger, "api-server"),
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", srv.authed(srv.handleStatus))
	mux.HandleFunc("/api/resolve", srv.authed(srv.handleResolve))
	mux.HandleFunc("/api/pairings", srv.authed(srv.handlePairings))
	mux.HandleFunc("/api/cache", srv.authed(srv.handleCache))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) authed(next http.HandlerFunc) http.HandlerFunc {
	return authMiddleware(s.token, func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		s.logger.Debug("api request",
			logging.String("request_id", requestID),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path))
		next(w, r)
	})
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status()
	s.writeJSON(w, http.StatusOK, statusResponse{
		Running:      status.Running,
		SessionID:    status.SessionID,
		PairDBPath:   status.PairDBPath,
		LockFilePath: status.LockFilePath,
		Pairings:     status.Engine.Pairings,
		Negatives:    status.Engine.Negatives,
		PendingSeeks: status.Engine.PendingSeeks,
		InFlight:     status.Engine.InFlight,
	})
}

func (s *apiServer) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	title := strings.TrimSpace(query.Get("title"))
	artist := strings.TrimSpace(query.Get("artist"))
	if title == "" || artist == "" {
		s.writeError(w, http.StatusBadRequest, "title and artist are required")
		return
	}
	resolved := s.daemon.engine.Resolve(r.Context(), title, artist)
	if resolved == nil {
		s.writeError(w, http.StatusNotFound, "pairing not found")
		return
	}
	s.writeJSON(w, http.StatusOK, pairingPayload{
		TrackID: resolved.TrackID,
		VideoID: resolved.VideoID,
	})
}

func (s *apiServer) handlePairings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if idStr := strings.TrimSpace(r.URL.Query().Get("id")); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid media id")
			return
		}
		p, ok := s.daemon.engine.LookupByID(r.Context(), id)
		if !ok {
			s.writeError(w, http.StatusNotFound, "pairing not found")
			return
		}
		s.writeJSON(w, http.StatusOK, pairingPayload{TrackID: p.TrackID, VideoID: p.VideoID})
		return
	}
	cached := s.daemon.engine.Pairings()
	payload := pairingListResponse{Pairings: make([]pairingPayload, 0, len(cached))}
	for _, p := range cached {
		payload.Pairings = append(payload.Pairings, pairingPayload{TrackID: p.TrackID, VideoID: p.VideoID})
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	removed, err := s.daemon.ClearCaches(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, clearResponse{Cleared: true, RemovedStored: removed})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
