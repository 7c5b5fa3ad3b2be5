package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"gacha-tracker/internal/constants"
	"gacha-tracker/internal/domain"
	"gacha-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server exposes the analytics engine and the record store over a JSON API.
type Server struct {
	analyticsSvc *service.AnalyticsService
	recordSvc    *service.RecordService
	profileSvc   *service.ProfileService
	logger       zerolog.Logger
}

func New(analyticsSvc *service.AnalyticsService, recordSvc *service.RecordService, profileSvc *service.ProfileService, logger zerolog.Logger) *Server {
	return &Server{
		analyticsSvc: analyticsSvc,
		recordSvc:    recordSvc,
		profileSvc:   profileSvc,
		logger:       logger,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/analytics/{uid}", s.handleAnalytics)
		r.Post("/analytics/batch", s.handleBatchAnalytics)

		r.Route("/records/{uid}", func(r chi.Router) {
			r.Get("/", s.handleHistory)
			r.Get("/summary", s.handleSummary)
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)
			r.Post("/clean", s.handleClean)
			r.Post("/mock", s.handleMock)
		})

		r.Get("/profiles", s.handleProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Get("/profiles/{uid}", s.handleProfile)
		r.Delete("/profiles/{uid}", s.handleDeleteProfile)
	})

	return r
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	report, err := s.analyticsSvc.DetailedAnalytics(r.Context(), uid, game, r.URL.Query().Get("pool"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

type batchRequest struct {
	UIDs []string `json:"uids"`
	Game string   `json:"game"`
}

func (s *Server) handleBatchAnalytics(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	gameInfo, ok := domain.GameByValue(req.Game)
	if !ok {
		s.writeErrorMsg(w, http.StatusBadRequest, "unknown game")
		return
	}
	if len(req.UIDs) == 0 || len(req.UIDs) > constants.MaxBatchUsers {
		s.writeErrorMsg(w, http.StatusBadRequest, "uids must contain between 1 and 50 entries")
		return
	}

	results := s.analyticsSvc.BatchAnalyze(r.Context(), req.UIDs, gameInfo.Game)
	s.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	records, total, err := s.recordSvc.History(r.Context(), uid, game, page, pageSize)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"total":   total,
		"records": recordsJSON(records),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	summary, err := s.recordSvc.Summary(r.Context(), uid, game)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.recordSvc.Import(r.Context(), uid, game, payload)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	doc, err := s.recordSvc.Export(r.Context(), uid, game)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=gacha_records.json")
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	result, err := s.recordSvc.Clean(r.Context(), uid, game)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMock(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	seed, _ := strconv.ParseInt(r.URL.Query().Get("seed"), 10, 64)

	records, err := s.recordSvc.GenerateMock(r.Context(), uid, game, count, seed)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"generated": len(records)})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	var profiles []domain.Profile
	var err error
	if gameValue := r.URL.Query().Get("game"); gameValue != "" {
		gameInfo, ok := domain.GameByValue(gameValue)
		if !ok {
			s.writeErrorMsg(w, http.StatusBadRequest, "unknown game")
			return
		}
		profiles, err = s.profileSvc.ByGame(r.Context(), gameInfo.Game)
	} else {
		profiles, err = s.profileSvc.All(r.Context())
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

type createProfileRequest struct {
	UID  string `json:"uid"`
	Game string `json:"game"`
	Name string `json:"name"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	gameInfo, ok := domain.GameByValue(req.Game)
	if !ok {
		s.writeErrorMsg(w, http.StatusBadRequest, "unknown game")
		return
	}

	profile, err := s.profileSvc.Create(r.Context(), req.UID, gameInfo.Game, req.Name)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	profile, err := s.profileSvc.Get(r.Context(), uid, game)
	if err != nil {
		s.writeErrorMsg(w, http.StatusNotFound, "profile not found")
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	game, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	if err := s.profileSvc.Delete(r.Context(), uid, game); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// gameParam resolves ?game= or falls back to guessing from the UID prefix.
func (s *Server) gameParam(w http.ResponseWriter, r *http.Request) (domain.Game, bool) {
	if gameValue := r.URL.Query().Get("game"); gameValue != "" {
		gameInfo, ok := domain.GameByValue(gameValue)
		if !ok {
			s.writeErrorMsg(w, http.StatusBadRequest, "unknown game")
			return "", false
		}
		return gameInfo.Game, true
	}
	if gameInfo, ok := domain.GameByUID(chi.URLParam(r, "uid")); ok {
		return gameInfo.Game, true
	}
	s.writeErrorMsg(w, http.StatusBadRequest, "game is required")
	return "", false
}

type recordJSON struct {
	Game     string `json:"game"`
	UID      string `json:"uid"`
	PoolType string `json:"gachaType"`
	ItemID   string `json:"itemId"`
	Count    string `json:"count"`
	Time     string `json:"time"`
	ItemName string `json:"name"`
	Lang     string `json:"lang"`
	Category string `json:"itemType"`
	Rank     int    `json:"rankType"`
	ID       string `json:"id"`
	PoolID   string `json:"gachaId"`
}

func recordsJSON(records []domain.PullRecord) []recordJSON {
	out := make([]recordJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, recordJSON{
			Game:     string(rec.Game),
			UID:      rec.UID,
			PoolType: rec.PoolType,
			ItemID:   rec.ItemID,
			Count:    rec.Count,
			Time:     rec.Time,
			ItemName: rec.ItemName,
			Lang:     rec.Lang,
			Category: rec.Category,
			Rank:     rec.Rank,
			ID:       rec.ID,
			PoolID:   rec.PoolID,
		})
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
