package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/darkkaiser/product-enricher/internal/enrich/content"
	"github.com/darkkaiser/product-enricher/internal/metrics"
	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/darkkaiser/product-enricher/internal/platform"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
)

// Orchestrator 보강 결과를 플랫폼에 순서대로 기록합니다.
//
// 각 단계는 이전 단계가 끝난(성공 또는 실패) 뒤에 실행되며, 한 단계의 실패가 다음 단계를
// 막지 않습니다. 예외적으로 플랫폼과의 연결이 끊기거나(System) 이벤트 처리 시간이 초과되면
// 남은 단계를 모두 생략하고 실행을 중단합니다.
type Orchestrator struct {
	gateway platform.Gateway
	synth   *content.Synthesizer
	metrics *metrics.Registry

	metafieldNamespace string
	metafieldKey       string
}

// NewOrchestrator Orchestrator를 생성합니다. m은 nil일 수 있습니다.
func NewOrchestrator(gateway platform.Gateway, synth *content.Synthesizer, metafieldNamespace, metafieldKey string, m *metrics.Registry) *Orchestrator {
	return &Orchestrator{
		gateway:            gateway,
		synth:              synth,
		metrics:            m,
		metafieldNamespace: metafieldNamespace,
		metafieldKey:       metafieldKey,
	}
}

// applyInput 단계 실행에 필요한 이벤트 단위 데이터입니다.
type applyInput struct {
	event       *domain.ProductEvent
	attrs       domain.InferredAttributes
	seo         domain.SeoContent
	description string
	prices      map[string]float64
	variants    map[string]domain.VariantRef
}

// Apply 갱신 계획을 만들고 순서대로 실행한 결과를 반환합니다.
// prices는 variant GraphQL ID별 가격이며, 가격이 없는 variant는 갱신하지 않습니다.
func (o *Orchestrator) Apply(ctx context.Context, event *domain.ProductEvent, attrs domain.InferredAttributes, seo domain.SeoContent, descriptionHTML string, prices map[string]float64) *OutcomeReport {
	in := applyInput{
		event:       event,
		attrs:       attrs,
		seo:         seo,
		description: descriptionHTML,
		prices:      prices,
		variants:    make(map[string]domain.VariantRef, len(event.Variants)),
	}
	for _, v := range event.Variants {
		in.variants[v.GraphQLID] = v
	}

	plan := buildPlan(event, prices, content.Collections(attrs))
	report := newOutcomeReport(event.GraphQLID)

	for _, step := range plan.Steps {
		if !report.Aborted {
			if err := ctx.Err(); err != nil {
				o.abort(report, contextAbortReason(err))
			}
		}

		if report.Aborted {
			report.record(step, StepOutcome{Kind: step.Kind, Target: step.Target, Status: StatusSkipped, Detail: "실행 중단으로 생략"})
			o.metrics.ObserveStep(string(step.Kind), string(StatusSkipped))
			continue
		}

		outcome := o.execute(ctx, step, in)
		report.record(step, outcome)
		o.metrics.ObserveStep(string(step.Kind), string(outcome.Status))
		o.log(event, outcome)

		if outcome.Err != nil && isConnectivityLoss(ctx, outcome.Err) {
			o.abort(report, outcome.Err)
		}
	}

	return report
}

func (o *Orchestrator) abort(report *OutcomeReport, reason error) {
	report.Aborted = true
	report.AbortReason = reason

	applog.WithComponentAndFields(ComponentOrchestrator, applog.Fields{
		"product_id": report.ProductGID,
		"reason":     reason.Error(),
	}).Error("플랫폼 갱신을 중단합니다. 남은 단계는 생략됩니다")
}

// contextAbortReason 컨텍스트 종료 원인에 맞는 중단 사유를 만듭니다.
func contextAbortReason(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.FromContext(err, "이벤트 처리 제한 시간 안에 갱신을 마치지 못했습니다")
	}
	return apperrors.FromContext(err, "이벤트 처리가 취소되어 갱신을 중단했습니다")
}

// isConnectivityLoss 더 이상 단계를 진행할 수 없는 실패인지 판단합니다.
func isConnectivityLoss(ctx context.Context, err error) bool {
	return ctx.Err() != nil || apperrors.Is(err, apperrors.System)
}

func (o *Orchestrator) execute(ctx context.Context, step PlannedStep, in applyInput) StepOutcome {
	outcome := StepOutcome{Kind: step.Kind, Target: step.Target}

	var err error
	switch step.Kind {
	case StepSEO:
		err = o.gateway.UpdateProductSEO(ctx, in.event.GraphQLID, in.seo)

	case StepDescription:
		err = o.gateway.UpdateProductDescription(ctx, in.event.ID, in.description)

	case StepTags:
		// 태그는 웹훅 페이로드 시점의 값으로 계산하며 플랫폼에서 다시 읽지 않습니다.
		err = o.gateway.UpdateProductTags(ctx, in.event.ID, in.attrs.Tags)

	case StepVariantPrice:
		return o.updateVariantPrice(ctx, outcome, in)

	case StepMetafield:
		err = o.gateway.SetMetafield(ctx, in.event.GraphQLID, platform.Metafield{
			Namespace: o.metafieldNamespace,
			Key:       o.metafieldKey,
			Value:     in.attrs.Material.Label(),
		})
		outcome.Detail = in.attrs.Material.Label()

	case StepCollectionMembership:
		return o.addToCollection(ctx, outcome, in)

	case StepImageAlt:
		return o.updateImageAlt(ctx, outcome, in)

	default:
		err = apperrors.Newf(apperrors.Internal, "알 수 없는 갱신 단계입니다: %s", step.Kind)
	}

	return finish(outcome, err)
}

func finish(outcome StepOutcome, err error) StepOutcome {
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}
	outcome.Status = StatusSucceeded
	return outcome
}

// updateVariantPrice REST로 가격을 갱신하고, NotFound일 때만 GraphQL 경로로 정확히 한 번 더 시도합니다.
// 그 밖의 에러나 GraphQL 경로의 실패는 해당 variant에 대해서만 최종 실패입니다.
func (o *Orchestrator) updateVariantPrice(ctx context.Context, outcome StepOutcome, in applyInput) StepOutcome {
	variant := in.variants[outcome.Target]
	price := in.prices[outcome.Target]
	outcome.Detail = fmt.Sprintf("%.2f", price)

	err := o.gateway.UpdateVariantPrice(ctx, variant.ID, price)
	if err == nil || !apperrors.Is(err, apperrors.NotFound) {
		return finish(outcome, err)
	}

	applog.WithComponentAndFields(ComponentOrchestrator, applog.Fields{
		"product_id": in.event.GraphQLID,
		"variant_id": outcome.Target,
		"error":      err.Error(),
	}).Info("REST 경로에서 variant를 찾지 못해 GraphQL 경로로 가격을 갱신합니다")

	o.metrics.IncPriceFallback()
	outcome.Fallback = true

	return finish(outcome, o.gateway.UpdateVariantPriceGraphQL(ctx, in.event.GraphQLID, outcome.Target, price))
}

// addToCollection 제목이 일치하는 컬렉션이 있으면 상품을 추가합니다. 컬렉션은 미리 만들어져 있어야 하며,
// 없으면 조용히 생략합니다.
func (o *Orchestrator) addToCollection(ctx context.Context, outcome StepOutcome, in applyInput) StepOutcome {
	collection, err := o.gateway.FindCollectionByTitle(ctx, outcome.Target)
	if err != nil {
		return finish(outcome, err)
	}
	if collection == nil {
		outcome.Status = StatusSkipped
		outcome.Detail = "컬렉션이 없습니다"
		return outcome
	}

	return finish(outcome, o.gateway.AddProductToCollection(ctx, collection.GraphQLID, in.event.GraphQLID))
}

// updateImageAlt 대체 텍스트가 없는 이미지에만 대체 텍스트를 설정합니다. 이미 설정된 이미지는 건드리지 않습니다.
func (o *Orchestrator) updateImageAlt(ctx context.Context, outcome StepOutcome, in applyInput) StepOutcome {
	images, err := o.gateway.ListProductImages(ctx, in.event.ID)
	if err != nil {
		return finish(outcome, err)
	}

	alt := o.synth.AltText(in.seo.Title)

	var updated, failed int
	var firstErr error
	for _, img := range images {
		if strings.TrimSpace(img.Alt) != "" {
			continue
		}

		if err := o.gateway.SetImageAltText(ctx, in.event.ID, img.ID, alt); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			if isConnectivityLoss(ctx, err) {
				break
			}
			continue
		}
		updated++
	}

	outcome.Detail = fmt.Sprintf("이미지 %d개 중 %d개 갱신", len(images), updated)
	if failed > 0 {
		outcome.Detail += fmt.Sprintf(", %d개 실패", failed)
	}

	return finish(outcome, firstErr)
}

func (o *Orchestrator) log(event *domain.ProductEvent, outcome StepOutcome) {
	entry := applog.WithComponentAndFields(ComponentOrchestrator, applog.Fields{
		"product_id": event.GraphQLID,
		"step":       outcome.Kind,
		"target":     outcome.Target,
		"status":     outcome.Status,
		"fallback":   outcome.Fallback,
		"detail":     outcome.Detail,
	})

	if outcome.Err != nil {
		entry.WithError(outcome.Err).Warn("갱신 단계 실패")
		return
	}
	entry.Debug("갱신 단계 완료")
}
