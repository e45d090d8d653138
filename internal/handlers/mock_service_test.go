package handlers

import (
	"context"
	"net/http"
	"time"

	"aquarium_controller/internal/models"
	"aquarium_controller/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockControls struct {
	err error

	targets []float64
	feeds   []*int
	refills []*float64
}

func (m *mockControls) SetTarget(ctx context.Context, celsius float64) error {
	m.targets = append(m.targets, celsius)
	return m.err
}
func (m *mockControls) Feed(ctx context.Context, seconds *int) error {
	m.feeds = append(m.feeds, seconds)
	return m.err
}
func (m *mockControls) Refill(ctx context.Context, target *float64) error {
	m.refills = append(m.refills, target)
	return m.err
}

type mockMonitoring struct {
	status models.Status
	err    error
	calls  int
}

func (m *mockMonitoring) GetStatus(ctx context.Context) (models.Status, error) {
	m.calls++
	return m.status, m.err
}

type mockHistory struct {
	readings []models.ReadingRecord
	alerts   []models.AlertRecord
	stats    []models.ReadingStats
	err      error

	lastReadingQuery service.ReadingQuery
	lastAlertQuery   service.AlertQuery
	lastStatsFrom    time.Time
	lastStatsTo      time.Time
}

func (m *mockHistory) ListReadings(ctx context.Context, q service.ReadingQuery) ([]models.ReadingRecord, error) {
	m.lastReadingQuery = q
	return m.readings, m.err
}
func (m *mockHistory) ListAlerts(ctx context.Context, q service.AlertQuery) ([]models.AlertRecord, error) {
	m.lastAlertQuery = q
	return m.alerts, m.err
}
func (m *mockHistory) Stats(ctx context.Context, from, to time.Time) ([]models.ReadingStats, error) {
	m.lastStatsFrom, m.lastStatsTo = from, to
	return m.stats, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func floatPtr(v float64) *float64 { return &v }
