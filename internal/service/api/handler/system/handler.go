// Package system 서버 상태 확인과 빌드 정보 조회 엔드포인트를 제공합니다.
package system

import (
	"net/http"
	"time"

	"github.com/darkkaiser/product-enricher/internal/pkg/version"
	"github.com/darkkaiser/product-enricher/internal/service/api/constants"
	"github.com/darkkaiser/product-enricher/internal/service/api/model/system"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
	"github.com/labstack/echo/v4"
)

// Dependency 헬스체크 응답에 포함할 외부 의존성입니다.
// Required가 true인데 구성되지 않은 의존성이 있으면 서버 상태를 unhealthy로 보고합니다.
type Dependency struct {
	Name       string
	Configured bool
	Required   bool
}

// Handler 시스템 엔드포인트 핸들러입니다.
type Handler struct {
	buildInfo    version.Info
	dependencies []Dependency

	serverStartTime time.Time
}

// NewHandler Handler를 생성합니다.
func NewHandler(buildInfo version.Info, dependencies ...Dependency) *Handler {
	return &Handler{
		buildInfo:    buildInfo,
		dependencies: dependencies,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 상태 확인
// @Description 서버 가동 시간과 외부 의존성의 구성 상태를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	status := constants.HealthStatusHealthy
	deps := make(map[string]system.DependencyStatus, len(h.dependencies))

	for _, d := range h.dependencies {
		switch {
		case d.Configured:
			deps[d.Name] = system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: "설정됨"}
		case d.Required:
			deps[d.Name] = system.DependencyStatus{Status: constants.HealthStatusUnhealthy, Message: "필수 설정이 없습니다"}
			status = constants.HealthStatusUnhealthy
		default:
			deps[d.Name] = system.DependencyStatus{Status: constants.HealthStatusDisabled, Message: "설정되지 않아 사용하지 않습니다"}
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       status,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

// VersionHandler godoc
// @Summary 빌드 정보 조회
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:   h.buildInfo.Version,
		Commit:    h.buildInfo.Commit,
		BuildDate: h.buildInfo.BuildDate,
		GoVersion: h.buildInfo.GoVersion,
	})
}
