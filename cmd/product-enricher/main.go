package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/product-enricher/internal/alert"
	"github.com/darkkaiser/product-enricher/internal/competitor"
	"github.com/darkkaiser/product-enricher/internal/config"
	"github.com/darkkaiser/product-enricher/internal/enrich/content"
	"github.com/darkkaiser/product-enricher/internal/enrich/pricing"
	"github.com/darkkaiser/product-enricher/internal/metrics"
	"github.com/darkkaiser/product-enricher/internal/pipeline"
	"github.com/darkkaiser/product-enricher/internal/platform/shopify"
	"github.com/darkkaiser/product-enricher/internal/pkg/version"
	"github.com/darkkaiser/product-enricher/internal/service"
	"github.com/darkkaiser/product-enricher/internal/service/api"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
)

// @title Product Enricher API
// @version 1.0
// @description 상품 생성 웹훅을 받아 속성 추론, 가격 산정, SEO 콘텐츠 생성 후 상점 정보를 갱신합니다.
// @description
// @description ## 웹훅 서명
// @description http.webhook_secret이 설정되어 있으면 X-Shopify-Hmac-Sha256 헤더(본문의 HMAC-SHA256, Base64)를 검증합니다.
// @BasePath /

const component = "main"

const banner = `
  ____                _            _     _____            _      _
 |  _ \ _ __ ___   __| |_   _  ___| |_  | ____|_ __  _ __(_) ___| |__   ___ _ __
 | |_) | '__/ _ \ / _' | | | |/ __| __| |  _| | '_ \| '__| |/ __| '_ \ / _ \ '__|
 |  __/| | | (_) | (_| | |_| | (__| |_  | |___| | | | |  | | (__| | | |  __/ |
 |_|   |_|  \___/ \__,_|\__,_|\___|\__| |_____|_| |_|_|  |_|\___|_| |_|\___|_|
                                                                         %s
--------------------------------------------------------------------------------
`

// app 서로 연결된 애플리케이션 구성 요소입니다.
type app struct {
	pipeline *pipeline.Pipeline
	services []service.Service
}

// newApp 설정으로부터 모든 구성 요소를 생성하고 연결합니다.
func newApp(appConfig *config.AppConfig, buildInfo version.Info) (*app, error) {
	alertService, err := alert.New(appConfig.Alert.Telegram)
	if err != nil {
		return nil, err
	}

	registry := metrics.NewRegistry()
	synth := content.NewSynthesizer(appConfig.Store.Brand)

	engine := pricing.NewEngine(pricing.Options{
		MinPrice:  appConfig.Pricing.MinPrice,
		MaxPrice:  appConfig.Pricing.MaxPrice,
		SampleMin: appConfig.Pricing.SampleMin,
		SampleMax: appConfig.Pricing.SampleMax,
		Markup:    appConfig.Pricing.Markup,
	})

	orchestrator := pipeline.NewOrchestrator(
		shopify.New(appConfig.Shopify),
		synth,
		appConfig.Store.MetafieldNamespace,
		appConfig.Store.MetafieldKey,
		registry,
	)

	p := pipeline.New(pipeline.Options{
		Engine:       engine,
		Synthesizer:  synth,
		Competitor:   competitor.New(appConfig.Competitor),
		Orchestrator: orchestrator,
		Notifier:     alertService,
		Metrics:      registry,
		EventTimeout: appConfig.Pipeline.EventTimeout,
	})

	apiService := api.NewService(appConfig, p, alertService, registry.Handler(), buildInfo)

	return &app{
		pipeline: p,
		services: []service.Service{alertService, apiService},
	}, nil
}

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %+v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(component, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
		"shop":    appConfig.Shopify.ShopDomain,
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	// 3. 구성 요소 생성
	a, err := newApp(appConfig, buildInfo)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("구성 요소 초기화 실패")
		appLogCloser.Close()
		os.Exit(1)
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	// 4. 서비스 시작
	for _, s := range a.services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()

			appLogCloser.Close()
			os.Exit(1)
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent(component).Info("서버 가동 완료")

	<-termC

	// 5. 종료 처리
	applog.WithComponent(component).Info("종료 신호를 받았습니다. 서비스를 중지합니다")
	cancel()
	serviceStopWG.Wait()
}
