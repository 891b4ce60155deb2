// Package handler API v1 엔드포인트 핸들러를 제공합니다.
package handler

import (
	"fmt"

	"github.com/darkkaiser/product-enricher/internal/domain"
	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/darkkaiser/product-enricher/internal/pipeline"
	"github.com/darkkaiser/product-enricher/internal/service/api/constants"
	"github.com/darkkaiser/product-enricher/internal/service/api/httputil"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler API v1 핸들러입니다.
type Handler struct {
	processor pipeline.Processor
}

// NewHandler Handler를 생성합니다. processor가 nil이면 패닉이 발생합니다.
func NewHandler(processor pipeline.Processor) *Handler {
	if processor == nil {
		panic("handler.NewHandler: processor는 필수입니다")
	}
	return &Handler{processor: processor}
}

// ProductCreatedHandler godoc
// @Summary 상품 생성 웹훅 수신
// @Description products/create 웹훅을 받아 상품 보강 파이프라인을 실행합니다.
// @Description 보강이 실패하면 500을 반환하여 웹훅 발신처가 재전송하도록 합니다. 모든 갱신은 재실행해도 같은 결과를 냅니다.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-Shopify-Hmac-Sha256 header string false "본문의 HMAC-SHA256 서명 (Base64, 웹훅 시크릿이 설정된 경우 필수)"
// @Param event body domain.ProductEvent true "상품 생성 이벤트"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse "이벤트 형식 오류"
// @Failure 401 {object} response.ErrorResponse "서명 검증 실패"
// @Failure 415 {object} response.ErrorResponse "Content-Type 오류"
// @Failure 429 {object} response.ErrorResponse "요청 속도 제한 초과"
// @Failure 500 {object} response.ErrorResponse "보강 실패"
// @Router /api/v1/webhooks/products/create [post]
func (h *Handler) ProductCreatedHandler(c echo.Context) error {
	event := new(domain.ProductEvent)
	if err := c.Bind(event); err != nil {
		h.log(c).WithField("error", err.Error()).Warn("상품 이벤트 본문을 해석하지 못했습니다")
		return httputil.NewBadRequestError(constants.ErrMsgInvalidPayload)
	}

	report, err := h.processor.Process(c.Request().Context(), event)
	if err != nil {
		if apperrors.Is(err, apperrors.InvalidInput) {
			return httputil.NewBadRequestError(fmt.Sprintf("%s: %s", constants.ErrMsgInvalidPayload, messageOf(err)))
		}
		return err
	}

	if !report.Succeeded() {
		h.log(c).WithFields(applog.Fields{
			"product_id": report.ProductGID,
			"aborted":    report.Aborted,
		}).Warn("상품 보강 실패 응답을 반환합니다")

		return httputil.NewInternalServerError(constants.ErrMsgEnrichmentFailed)
	}

	return httputil.NewSuccessResponse(c, constants.MsgWebhookProcessed)
}

func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"topic":      c.Request().Header.Get(constants.HeaderShopifyTopic),
		"webhook_id": c.Request().Header.Get(constants.HeaderShopifyWebhookID),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}

// messageOf 응답에 노출할 수 있도록 AppError의 메시지만 꺼냅니다.
func messageOf(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}
