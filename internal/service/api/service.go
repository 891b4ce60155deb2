// Package api 상품 생성 웹훅을 수신하는 HTTP 서비스를 제공합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/product-enricher/docs"
	"github.com/darkkaiser/product-enricher/internal/config"
	"github.com/darkkaiser/product-enricher/internal/pipeline"
	"github.com/darkkaiser/product-enricher/internal/pkg/version"
	"github.com/darkkaiser/product-enricher/internal/service/api/constants"
	"github.com/darkkaiser/product-enricher/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/product-enricher/internal/service/api/v1"
	v1handler "github.com/darkkaiser/product-enricher/internal/service/api/v1/handler"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service 웹훅 API 서버의 생명주기를 관리합니다.
//
// Start로 시작하며 전달받은 context가 취소되면 Graceful Shutdown을 수행합니다.
// 서버가 예기치 않게 종료되면 Notifier로 운영자에게 알립니다.
type Service struct {
	appConfig *config.AppConfig

	processor      pipeline.Processor
	notifier       pipeline.Notifier
	metricsHandler http.Handler

	buildInfo version.Info

	// listener 테스트에서 임의 포트를 사용하기 위해 주입합니다. nil이면 설정된 포트로 바인딩합니다.
	listener net.Listener

	running   bool
	runningMu sync.Mutex
}

// NewService Service를 생성합니다. notifier와 metricsHandler는 nil일 수 있습니다.
func NewService(appConfig *config.AppConfig, processor pipeline.Processor, notifier pipeline.Notifier, metricsHandler http.Handler, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("api.NewService: AppConfig는 필수입니다")
	}
	if processor == nil {
		panic("api.NewService: Processor는 필수입니다")
	}

	return &Service{
		appConfig: appConfig,

		processor:      processor,
		notifier:       notifier,
		metricsHandler: metricsHandler,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 서버는 별도 고루틴에서 실행되며 이 함수는 즉시 반환됩니다.
// 서비스가 완전히 종료되면 serviceStopWG.Done이 호출됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}
	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 핸들러, 미들웨어 체인, 라우트가 구성된 Echo 인스턴스를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	httpConfig := s.appConfig.HTTP

	systemHandler := system.NewHandler(s.buildInfo,
		system.Dependency{Name: constants.DependencyShopify, Configured: s.appConfig.Shopify.AccessToken != "", Required: true},
		system.Dependency{Name: constants.DependencyCompetitor, Configured: s.appConfig.Competitor.Enabled()},
		system.Dependency{Name: constants.DependencyAlert, Configured: s.appConfig.Alert.Telegram.Enabled()},
	)
	v1Handler := v1handler.NewHandler(s.processor)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:              s.appConfig.Debug,
		AllowOrigins:       httpConfig.AllowOrigins,
		RequestTimeout:     httpConfig.RequestTimeout,
		BodyLimit:          httpConfig.BodyLimit,
		RateLimitPerSecond: httpConfig.RateLimit.RequestsPerSecond,
		RateLimitBurst:     httpConfig.RateLimit.Burst,
	})

	RegisterRoutes(e, systemHandler, s.metricsHandler)
	v1.RegisterRoutes(e, v1Handler, httpConfig.WebhookSecret)

	return e
}

func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.HTTP.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
	}).Info(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if s.listener != nil {
		e.Listener = s.listener
		err = e.Start("")
	} else {
		err = e.Start(fmt.Sprintf(":%d", port))
	}

	s.handleServerError(err)
}

// handleServerError 정상 종료(http.ErrServerClosed)가 아닌 에러는 기록하고 운영자에게 알립니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.HTTP.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)

	if s.notifier != nil {
		s.notifier.Notify(fmt.Sprintf("%s\n\n%s", constants.LogMsgServiceHTTPServerFatalError, err))
	}
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 이미 종료되었으므로 Shutdown 없이 상태만 정리합니다.
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownErr)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
