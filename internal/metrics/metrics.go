// Package metrics 보강 파이프라인의 Prometheus 지표를 정의합니다.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "enricher"

// 실행 결과 라벨 값
const (
	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
	ResultAborted   = "aborted"
	ResultRejected  = "rejected"
)

// 경쟁 가격 조회 결과 라벨 값
const (
	BenchmarkHit      = "hit"
	BenchmarkEmpty    = "empty"
	BenchmarkError    = "error"
	BenchmarkDisabled = "disabled"
)

// Registry 파이프라인 지표와 이를 노출하는 전용 레지스트리입니다.
//
// 모든 메서드는 nil 수신자에서도 안전하게 호출할 수 있으며, 이 경우 아무 일도 하지 않습니다.
type Registry struct {
	reg *prometheus.Registry

	runs             *prometheus.CounterVec
	steps            *prometheus.CounterVec
	runDuration      prometheus.Histogram
	benchmarkLookups *prometheus.CounterVec
	priceFallbacks   prometheus.Counter
}

// NewRegistry 지표를 생성하고 새 레지스트리에 등록합니다. Go 런타임과 프로세스 지표도 함께 등록됩니다.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "처리한 상품 이벤트 수 (결과별)",
		}, []string{"result"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "실행한 갱신 단계 수 (단계 종류, 상태별)",
		}, []string{"step", "status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "상품 이벤트 하나를 처리하는 데 걸린 시간",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 25, 40},
		}),
		benchmarkLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "benchmark_lookups_total",
			Help:      "경쟁 가격 조회 수 (결과별)",
		}, []string{"result"}),
		priceFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_fallbacks_total",
			Help:      "REST 가격 갱신 실패(NotFound)로 GraphQL 경로를 사용한 횟수",
		}),
	}

	r.reg.MustRegister(
		r.runs, r.steps, r.runDuration, r.benchmarkLookups, r.priceFallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler /metrics 엔드포인트용 HTTP 핸들러를 반환합니다.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveRun 이벤트 처리 결과와 소요 시간을 기록합니다.
func (r *Registry) ObserveRun(result string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(result).Inc()
	r.runDuration.Observe(elapsed.Seconds())
}

// ObserveStep 갱신 단계 하나의 결과를 기록합니다.
func (r *Registry) ObserveStep(step, status string) {
	if r == nil {
		return
	}
	r.steps.WithLabelValues(step, status).Inc()
}

// ObserveBenchmark 경쟁 가격 조회 결과를 기록합니다.
func (r *Registry) ObserveBenchmark(result string) {
	if r == nil {
		return
	}
	r.benchmarkLookups.WithLabelValues(result).Inc()
}

// IncPriceFallback GraphQL 가격 갱신 경로 사용 횟수를 증가시킵니다.
func (r *Registry) IncPriceFallback() {
	if r == nil {
		return
	}
	r.priceFallbacks.Inc()
}
