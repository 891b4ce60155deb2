package system

// HealthResponse 서버 상태 응답입니다.
type HealthResponse struct {
	// 전체 상태 (healthy, unhealthy)
	Status string `json:"status" example:"healthy"`

	// 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`

	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus 외부 의존성의 구성 상태입니다.
type DependencyStatus struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty" example:"설정됨"`
}

// VersionResponse 빌드 정보 응답입니다.
type VersionResponse struct {
	Version   string `json:"version" example:"v1.0.0"`
	Commit    string `json:"commit" example:"abc1234"`
	BuildDate string `json:"build_date" example:"2026-01-01T00:00:00Z"`
	GoVersion string `json:"go_version" example:"go1.24.0"`
}
