// Package pricing 소재, 체인 길이, 경쟁사 기준가를 조합하여 variant 판매가를 산정합니다.
//
// 모든 가격은 마지막 단계에서 한 번만 반올림 정책을 적용받으며, 결과는 항상 소수부가 .99이고
// 설정된 가격 범위 안에 있습니다.
package pricing

import (
	"math"
	"sort"

	"github.com/darkkaiser/product-enricher/internal/domain"
)

// Ladder 순은+보석 상품의 체인 길이별 가격 단계입니다.
type Ladder struct {
	// TierAMaxMM 이하의 길이는 TierA 가격
	TierAMaxMM int
	// TierBMaxMM 이하의 길이는 TierB 가격, 그보다 길면 TierC 가격
	TierBMaxMM int

	TierA, TierB, TierC float64
}

// Options 가격 정책입니다.
type Options struct {
	MinPrice float64
	MaxPrice float64

	// SampleMin, SampleMax 경쟁사 가격 표본의 유효 범위 (경계 포함)
	SampleMin float64
	SampleMax float64

	Markup float64

	Ladder Ladder

	// Fallback 기준가가 없을 때 사용하는 소재별 고정 가격
	Fallback map[domain.Material]float64
}

// DefaultLadder 기본 길이별 가격 단계
var DefaultLadder = Ladder{
	TierAMaxMM: 460,
	TierBMaxMM: 510,
	TierA:      49.99,
	TierB:      59.99,
	TierC:      69.99,
}

// DefaultFallback 기본 소재별 고정 가격표
var DefaultFallback = map[domain.Material]float64{
	domain.MaterialPlainSilver:        29.99,
	domain.MaterialSilverWithGemstone: 44.99,
	domain.MaterialSteel:              19.99,
	domain.MaterialAlloyWithStone:     14.99,
	domain.MaterialGoldTone:           16.99,
}

// Engine 가격 산정기입니다. 내부 상태가 없으므로 여러 고루틴에서 공유해도 안전합니다.
type Engine struct {
	opts Options
}

// NewEngine 가격 산정기를 생성합니다. Ladder, Fallback이 비어있으면 기본값을 사용합니다.
func NewEngine(opts Options) *Engine {
	if opts.Ladder == (Ladder{}) {
		opts.Ladder = DefaultLadder
	}
	if len(opts.Fallback) == 0 {
		opts.Fallback = DefaultFallback
	}
	return &Engine{opts: opts}
}

// Price variant 하나의 판매가를 산정합니다.
//
//  1. 순은+보석이고 길이를 알면 길이별 가격 단계
//  2. 경쟁사 기준가가 있으면 기준가
//  3. 그 밖에는 소재별 고정 가격
func (e *Engine) Price(material domain.Material, lengthMM *int, benchmark *float64) float64 {
	var raw float64

	switch {
	case material == domain.MaterialSilverWithGemstone && lengthMM != nil:
		raw = e.ladderPrice(*lengthMM)
	case benchmark != nil:
		raw = *benchmark
	default:
		var ok bool
		if raw, ok = e.opts.Fallback[material]; !ok {
			raw = e.opts.Fallback[domain.MaterialAlloyWithStone]
		}
	}

	return e.Round(raw)
}

func (e *Engine) ladderPrice(mm int) float64 {
	l := e.opts.Ladder
	switch {
	case mm <= l.TierAMaxMM:
		return l.TierA
	case mm <= l.TierBMaxMM:
		return l.TierB
	default:
		return l.TierC
	}
}

// Benchmark 경쟁사 가격 표본에서 기준가를 산출합니다.
//
// 유효 범위 밖의 가격을 제외한 표본의 중앙값에 마크업을 곱하고 반올림 정책을 적용합니다.
// 유효한 표본이 없으면 false를 반환합니다.
func (e *Engine) Benchmark(samples []float64) (float64, bool) {
	filtered := make([]float64, 0, len(samples))
	for _, p := range samples {
		if math.IsNaN(p) || p < e.opts.SampleMin || p > e.opts.SampleMax {
			continue
		}
		filtered = append(filtered, p)
	}
	if len(filtered) == 0 {
		return 0, false
	}

	return e.Round(Median(filtered) * e.opts.Markup), true
}

// Round 가격을 범위 안으로 제한한 뒤 정수부에 .99를 더합니다.
// 결과가 최대 가격을 넘으면 한 단계(1.00) 낮춥니다.
//
//	Round(66.00)   // 66.99
//	Round(1.50)    // 6.99   (범위 6.99~499.99)
//	Round(999.00)  // 499.99 (범위 6.99~499.99)
func (e *Engine) Round(raw float64) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		raw = e.opts.MinPrice
	}

	clamped := math.Min(math.Max(raw, e.opts.MinPrice), e.opts.MaxPrice)

	price := math.Floor(clamped) + 0.99
	if price > e.opts.MaxPrice+1e-9 {
		price -= 1
	}
	// 범위 최솟값이 .99보다 큰 소수부를 가지면(예: 6.995) 한 단계 올립니다.
	if price < e.opts.MinPrice-1e-9 {
		price += 1
	}

	return math.Round(price*100) / 100
}

// Median 표본의 중앙값을 반환합니다. 짝수 개이면 가운데 두 값의 평균입니다.
// 입력 슬라이스는 변경하지 않습니다.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
