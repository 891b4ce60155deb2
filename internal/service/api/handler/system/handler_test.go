package system

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/product-enricher/internal/pkg/version"
	"github.com/darkkaiser/product-enricher/internal/service/api/constants"
	"github.com/darkkaiser/product-enricher/internal/service/api/model/system"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, h(c))
	return rec
}

func TestHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name       string
		deps       []Dependency
		wantStatus string
		wantDeps   map[string]string
	}{
		{
			name: "필수 의존성 구성됨",
			deps: []Dependency{
				{Name: constants.DependencyShopify, Configured: true, Required: true},
				{Name: constants.DependencyCompetitor, Configured: false},
			},
			wantStatus: constants.HealthStatusHealthy,
			wantDeps: map[string]string{
				constants.DependencyShopify:    constants.HealthStatusHealthy,
				constants.DependencyCompetitor: constants.HealthStatusDisabled,
			},
		},
		{
			name: "필수 의존성 누락",
			deps: []Dependency{
				{Name: constants.DependencyShopify, Configured: false, Required: true},
			},
			wantStatus: constants.HealthStatusUnhealthy,
			wantDeps: map[string]string{
				constants.DependencyShopify: constants.HealthStatusUnhealthy,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(version.Info{}, tt.deps...)
			rec := serve(t, h.HealthCheckHandler)

			assert.Equal(t, http.StatusOK, rec.Code)

			var resp system.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.GreaterOrEqual(t, resp.Uptime, int64(0))

			got := make(map[string]string, len(resp.Dependencies))
			for name, d := range resp.Dependencies {
				got[name] = d.Status
			}
			assert.Equal(t, tt.wantDeps, got)
		})
	}
}

func TestVersionHandler(t *testing.T) {
	h := NewHandler(version.Info{Version: "v1.2.3", Commit: "abc1234", BuildDate: "2026-01-01", GoVersion: "go1.24.0"})
	rec := serve(t, h.VersionHandler)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"v1.2.3","commit":"abc1234","build_date":"2026-01-01","go_version":"go1.24.0"}`, rec.Body.String())
}
