package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finquest/finquest-api/internal/cache"
	"github.com/finquest/finquest-api/internal/config"
	"github.com/finquest/finquest-api/internal/engine"
	"github.com/finquest/finquest-api/internal/integrations/advisor"
	"github.com/finquest/finquest-api/internal/middleware"
	"github.com/finquest/finquest-api/internal/service"
)

func newTestHandler() *Handler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{ProjectionYears: 10, JWTSecret: "test", SessionTTL: time.Hour}
	svc := service.NewService(nil, log, cfg, advisor.NewClient(cfg, log), cache.NewSessionCache(cfg.SessionTTL, nil), nil)
	return NewHandler(svc)
}

func authed(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUserID, userID)
	return r.WithContext(ctx)
}

const profileJSON = `{
	"monthlyIncome": 75000,
	"monthlyExpenses": 45000,
	"totalDebt": 500000,
	"age": 32,
	"investments": [{"name": "Index fund", "amt": 100000, "expectedReturn": 10}]
}`

func TestHealthScoreEndpoint(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/health-score", strings.NewReader(profileJSON))
	rec := httptest.NewRecorder()
	h.HealthScore(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var assessment engine.HealthAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assessment))
	assert.Equal(t, 65, assessment.Metrics.HealthScore)
	assert.Equal(t, engine.ScoreGood, assessment.ScoreLabel)
	assert.NotEmpty(t, assessment.Recommendations)
}

func TestHealthScoreEndpointRejectsMalformedBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/health-score", strings.NewReader(`{"incomeStreams": 42}`))
	rec := httptest.NewRecorder()
	h.HealthScore(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectionsEndpoint(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/projections?years=3", strings.NewReader(profileJSON))
	rec := httptest.NewRecorder()
	h.Projections(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var series []engine.ProjectionSeries
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
	require.Len(t, series, 3)
	require.Len(t, series[0].Points, 4)
	assert.InDelta(t, 133100, series[0].Points[3].ProjectedWealth, 1e-6)
}

func TestProjectionsEndpointRejectsBadYears(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/projections?years=lots", strings.NewReader(profileJSON))
	rec := httptest.NewRecorder()
	h.Projections(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointZeroIncome(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"age": 30}`))
	rec := httptest.NewRecorder()
	h.Analyze(rec, authed(req, 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No income data provided")
}

func TestAnalyzeEndpointRequiresAuth(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(profileJSON))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAnalyzeEndpointLocalFallback(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(profileJSON))
	rec := httptest.NewRecorder()
	h.Analyze(rec, authed(req, 1))

	require.Equal(t, http.StatusOK, rec.Code)

	var analysis map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.EqualValues(t, 65, analysis["overallScore"])
	assert.NotEmpty(t, analysis["audit"])
	assert.NotEmpty(t, analysis["wealth_projection"])
}
