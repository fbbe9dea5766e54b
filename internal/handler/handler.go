package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/finquest/finquest-api/internal/adapter"
	"github.com/finquest/finquest-api/internal/middleware"
	"github.com/finquest/finquest-api/internal/models"
	"github.com/finquest/finquest-api/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// readProfile normalizes the request body into the canonical profile.
func readProfile(r *http.Request) (models.FinancialProfile, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return models.FinancialProfile{}, err
	}
	return adapter.NormalizeProfile(body)
}

// SaveProfile stores the caller's financial profile
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := readProfile(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SaveProfile(userID, profile); err != nil {
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// GetProfile returns the caller's stored financial profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.svc.GetProfile(userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Analyze returns the full analysis document for the submitted profile,
// from the advisor when available and the local engine otherwise.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := readProfile(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	analysis, err := h.svc.AnalyzeProfile(r.Context(), userID, profile)
	if errors.Is(err, service.ErrNoIncomeData) {
		http.Error(w, "No income data provided", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

// HealthScore returns the engine's health assessment for the submitted
// profile
func (h *Handler) HealthScore(w http.ResponseWriter, r *http.Request) {
	profile, err := readProfile(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, h.svc.Assess(profile))
}

// Projections returns per-scenario wealth projections for the submitted
// profile. The horizon comes from the "years" query parameter, defaulting
// to the configured value.
func (h *Handler) Projections(w http.ResponseWriter, r *http.Request) {
	profile, err := readProfile(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	years := 0
	if v := r.URL.Query().Get("years"); v != "" {
		years, err = strconv.Atoi(v)
		if err != nil || years < 0 {
			http.Error(w, "Invalid years parameter", http.StatusBadRequest)
			return
		}
	}

	respondJSON(w, http.StatusOK, h.svc.Project(profile, years))
}

// SaveGoal upserts the caller's goal document
func (h *Handler) SaveGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.SaveGoal(userID, &goal); err != nil {
		http.Error(w, "Failed to save goal", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// GetGoal returns the caller's goal document
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goal, err := h.svc.GetGoal(userID)
	if err != nil {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// GoalFeasibility evaluates the caller's stored goals against the planned
// contribution pace
func (h *Handler) GoalFeasibility(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.svc.EvaluateGoals(userID)
	if err != nil {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
