package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"svw.info/gearworks/internal/domain"
	"svw.info/gearworks/internal/usecase"
)

// maxBatch bounds one /api/batch request.
const maxBatch = 100

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/batch", h.handleBatch)
	mux.HandleFunc("/api/difficulty", h.handleDifficulty)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ---- Generate ----

type generateReq struct {
	LevelIndex int    `json:"levelIndex"`
	Seed       *int64 `json:"seed,omitempty"`
}

type generateResp struct {
	Level      *domain.Level `json:"level,omitempty"`
	Attempts   int           `json:"attempts,omitempty"`
	DurationMs int64         `json:"durationMs,omitempty"`
	Error      string        `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.LevelIndex < 1 {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "levelIndex must be >= 1"})
		return
	}
	lvl, st, err := h.UC.Generate(r.Context(), req.LevelIndex, req.Seed)
	if err != nil {
		writeJSON(w, statusFor(err), generateResp{Error: err.Error(), Attempts: st.Attempts, DurationMs: st.Duration.Milliseconds()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Level:      lvl,
		Attempts:   st.Attempts,
		DurationMs: st.Duration.Milliseconds(),
	})
}

// ---- Batch ----

type batchReq struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Seed *int64 `json:"seed,omitempty"`
	Save bool   `json:"save,omitempty"`
}

type batchItem struct {
	LevelIndex int    `json:"levelIndex"`
	ID         string `json:"id,omitempty"`
	Attempts   int    `json:"attempts"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

type batchResp struct {
	Items     []batchItem `json:"items,omitempty"`
	Generated int         `json:"generated"`
	Failed    int         `json:"failed"`
	Error     string      `json:"error,omitempty"`
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req batchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, batchResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.From < 1 || req.To < req.From || req.To-req.From+1 > maxBatch {
		writeJSON(w, http.StatusBadRequest, batchResp{Error: "need 1 <= from <= to and at most " + strconv.Itoa(maxBatch) + " levels"})
		return
	}
	items, err := h.UC.Batch(r.Context(), req.From, req.To, req.Seed)
	if err != nil {
		writeJSON(w, statusFor(err), batchResp{Error: err.Error()})
		return
	}
	var resp batchResp
	for _, it := range items {
		bi := batchItem{LevelIndex: it.LevelIndex, Attempts: it.Stats.Attempts, DurationMs: it.Stats.Duration.Milliseconds()}
		if it.Err != nil {
			bi.Error = it.Err.Error()
			resp.Failed++
		} else {
			bi.ID = it.Level.ID
			resp.Generated++
			if req.Save {
				if err := h.UC.Save(r.Context(), it.Level); err != nil {
					writeJSON(w, http.StatusInternalServerError, batchResp{Error: err.Error()})
					return
				}
			}
		}
		resp.Items = append(resp.Items, bi)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Difficulty ----

type difficultyResp struct {
	Config *domain.DifficultyConfig `json:"config,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

func (h *Handler) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	idx, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("level")))
	if err != nil || idx < 1 {
		writeJSON(w, http.StatusBadRequest, difficultyResp{Error: "level must be a positive integer"})
		return
	}
	cfg, err := h.UC.Resolve(idx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, difficultyResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, difficultyResp{Config: &cfg})
}

// ---- Save / Load / List ----

type saveReq struct {
	Level *domain.Level `json:"level"`
	Name  string        `json:"name,omitempty"`
}
type saveResp struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req saveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.Level == nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "missing level"})
		return
	}
	if req.Name != "" {
		req.Level.Name = req.Name
	}
	if err := h.UC.Save(r.Context(), req.Level); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{OK: true, ID: req.Level.ID})
}

type loadResp struct {
	Level *domain.Level `json:"level,omitempty"`
	Error string        `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "missing id"})
		return
	}
	lvl, err := h.UC.Load(r.Context(), id)
	if err != nil {
		writeJSON(w, statusFor(err), loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Level: lvl})
}

type listResp struct {
	Levels []domain.LevelMeta `json:"levels"`
	Error  string             `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	metas, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	if metas == nil {
		metas = []domain.LevelMeta{}
	}
	writeJSON(w, http.StatusOK, listResp{Levels: metas})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrExhausted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
