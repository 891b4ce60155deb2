package log

// NewProductionOptions 운영 환경용 로거 설정을 반환합니다.
// 웹훅 처리 기록은 로그 수집기로 전달되므로 JSON 형식으로 파일에만 기록합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:   appName,
		Level:  InfoLevel,
		Format: FormatJSON,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser/product-enricher",
	}
}

// NewDevelopmentOptions 개발 환경용 로거 설정을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:   appName,
		Level:  TraceLevel,
		Format: FormatText,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser/product-enricher",
	}
}
