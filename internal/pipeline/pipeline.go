// Package pipeline 상품 생성 이벤트 하나를 받아 속성 추론, 가격 산정, 콘텐츠 생성을 거쳐
// 플랫폼에 결과를 기록하는 보강 파이프라인을 제공합니다.
//
// 이벤트 간에 공유되는 가변 상태가 없으므로 여러 이벤트를 동시에 처리할 수 있습니다.
// 한 이벤트의 갱신 단계는 항상 순서대로 실행됩니다.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/product-enricher/internal/competitor"
	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/darkkaiser/product-enricher/internal/enrich/classifier"
	"github.com/darkkaiser/product-enricher/internal/enrich/content"
	"github.com/darkkaiser/product-enricher/internal/enrich/pricing"
	"github.com/darkkaiser/product-enricher/internal/metrics"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
)

// Notifier 실패했거나 진단 항목이 있는 실행을 운영자에게 알립니다. 호출자를 블록해서는 안 됩니다.
type Notifier interface {
	Notify(message string)
}

// Processor 이벤트 하나를 처리하는 인터페이스입니다. HTTP 계층은 이 인터페이스에만 의존합니다.
type Processor interface {
	Process(ctx context.Context, event *domain.ProductEvent) (*OutcomeReport, error)
}

// Pipeline 보강 파이프라인입니다.
type Pipeline struct {
	engine       *pricing.Engine
	synth        *content.Synthesizer
	competitor   competitor.Source
	orchestrator *Orchestrator
	notifier     Notifier
	metrics      *metrics.Registry

	eventTimeout time.Duration
}

var _ Processor = (*Pipeline)(nil)

// Options Pipeline 구성 요소입니다. Competitor, Notifier, Metrics는 nil일 수 있습니다.
type Options struct {
	Engine       *pricing.Engine
	Synthesizer  *content.Synthesizer
	Competitor   competitor.Source
	Orchestrator *Orchestrator
	Notifier     Notifier
	Metrics      *metrics.Registry
	EventTimeout time.Duration
}

// New Pipeline을 생성합니다.
func New(opts Options) *Pipeline {
	return &Pipeline{
		engine:       opts.Engine,
		synth:        opts.Synthesizer,
		competitor:   opts.Competitor,
		orchestrator: opts.Orchestrator,
		notifier:     opts.Notifier,
		metrics:      opts.Metrics,
		eventTimeout: opts.EventTimeout,
	}
}

// Process 이벤트 하나를 처리합니다.
//
// 상품 식별자가 없거나 올바르지 않은 경우에만 에러(InvalidInput)를 반환합니다. 그 밖의 모든 실패는
// OutcomeReport에 기록되며, 전체 성공 여부는 OutcomeReport.Succeeded로 판단합니다.
//
// 호출자의 취소(웹훅 발신처의 연결 종료 등)는 실행을 멈추지 않습니다. 실행을 중단시키는 것은
// 이벤트별 처리 제한 시간과 플랫폼 연결 끊김뿐입니다. 전달된 event는 변경되지 않습니다.
func (p *Pipeline) Process(ctx context.Context, event *domain.ProductEvent) (*OutcomeReport, error) {
	start := time.Now()

	// 1단계: 입력 정규화 및 검증
	event = event.Normalized()
	if err := event.Validate(); err != nil {
		p.metrics.ObserveRun(metrics.ResultRejected, time.Since(start))
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	if p.eventTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.eventTimeout)
		defer cancel()
	}

	fields := applog.Fields{"product_id": event.GraphQLID, "title": event.Title}
	applog.WithComponentAndFields(ComponentPipeline, fields).Info("상품 보강을 시작합니다")

	// 2단계: 속성 추론
	attrs := classifier.Classify(classifier.Input{
		Title:        event.Title,
		Description:  content.PlainText(content.StripImages(event.BodyHTML)),
		ExistingTags: event.Tags,
		ProductType:  event.ProductType,
		Variants:     event.Variants,
	})

	cleanTitle := content.CleanTitle(event.Title)

	// 3단계: 경쟁 가격 벤치마크 및 variant별 가격 산정
	benchmark := p.benchmark(ctx, cleanTitle, attrs)
	prices := p.price(event, attrs, benchmark)

	// 4단계: 콘텐츠 생성
	seo := p.synth.SEO(cleanTitle, attrs.Material, attrs.Type, attrs.Gemstone, attrs.Vintage)
	description := p.synth.Description(cleanTitle, attrs, event.BodyHTML)

	// 5단계: 플랫폼 갱신
	report := p.orchestrator.Apply(ctx, event, attrs, seo, description, prices)

	// 6단계: 결과 기록
	p.finish(report, attrs, time.Since(start))

	return report, nil
}

// benchmark 경쟁 가격 벤치마크를 구합니다. 조회 실패나 유효한 표본이 없으면 nil을 반환합니다.
func (p *Pipeline) benchmark(ctx context.Context, cleanTitle string, attrs domain.InferredAttributes) *float64 {
	if p.competitor == nil {
		p.metrics.ObserveBenchmark(metrics.BenchmarkDisabled)
		return nil
	}

	query := cleanTitle
	if query == "" {
		query = strings.TrimSpace(attrs.Material.Label() + " " + attrs.Type.Label())
	}

	samples, err := p.competitor.SearchPrices(ctx, query)
	if err != nil {
		p.metrics.ObserveBenchmark(metrics.BenchmarkError)
		applog.WithComponentAndFields(ComponentPipeline, applog.Fields{
			"query": query,
			"error": err.Error(),
		}).Warn("경쟁 가격을 조회하지 못했습니다. 기본 가격표를 사용합니다")
		return nil
	}

	value, ok := p.engine.Benchmark(samples)
	if !ok {
		p.metrics.ObserveBenchmark(metrics.BenchmarkEmpty)
		applog.WithComponentAndFields(ComponentPipeline, applog.Fields{
			"query":   query,
			"samples": len(samples),
		}).Info("유효한 경쟁 가격 표본이 없습니다. 기본 가격표를 사용합니다")
		return nil
	}

	p.metrics.ObserveBenchmark(metrics.BenchmarkHit)
	return &value
}

func (p *Pipeline) price(event *domain.ProductEvent, attrs domain.InferredAttributes, benchmark *float64) map[string]float64 {
	prices := make(map[string]float64, len(event.Variants))
	for _, v := range event.Variants {
		if v.GraphQLID == "" {
			continue
		}
		prices[v.GraphQLID] = p.engine.Price(attrs.Material, attrs.LengthOf(v.GraphQLID), benchmark)
	}
	return prices
}

func (p *Pipeline) finish(report *OutcomeReport, attrs domain.InferredAttributes, elapsed time.Duration) {
	result := metrics.ResultSucceeded
	switch {
	case report.Aborted:
		result = metrics.ResultAborted
	case !report.Succeeded():
		result = metrics.ResultFailed
	}
	p.metrics.ObserveRun(result, elapsed)

	diagnostics := report.Diagnostics()

	entry := applog.WithComponentAndFields(ComponentPipeline, applog.Fields{
		"product_id":  report.ProductGID,
		"material":    attrs.Material,
		"gemstone":    attrs.Gemstone,
		"type":        attrs.Type,
		"result":      result,
		"succeeded":   report.Count(StatusSucceeded),
		"failed":      report.Count(StatusFailed),
		"skipped":     report.Count(StatusSkipped),
		"diagnostics": len(diagnostics),
		"elapsed":     elapsed.String(),
	})

	if result != metrics.ResultSucceeded {
		entry.Error("상품 보강 실패")
	} else if len(diagnostics) > 0 {
		entry.Warn("상품 보강 완료 (일부 단계 실패)")
	} else {
		entry.Info("상품 보강 완료")
	}

	if p.notifier != nil && (result != metrics.ResultSucceeded || len(diagnostics) > 0) {
		p.notifier.Notify(formatAlert(report, result, diagnostics))
	}
}

func formatAlert(report *OutcomeReport, result string, diagnostics []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "상품 보강 %s\n상품: %s\n", result, report.ProductGID)
	for _, d := range diagnostics {
		sb.WriteString("• ")
		sb.WriteString(d)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
