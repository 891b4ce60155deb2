package v1

import (
	"github.com/darkkaiser/product-enricher/internal/service/api/middleware"
	"github.com/darkkaiser/product-enricher/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes API v1 라우트를 등록합니다.
//
// 웹훅 엔드포인트는 Content-Type 검사 후 서명을 검증합니다. webhookSecret이 비어있으면 서명 검증을 생략합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, webhookSecret string) {
	v1Group := e.Group("/api/v1")

	v1Group.POST("/webhooks/products/create", h.ProductCreatedHandler,
		middleware.ValidateContentType(echo.MIMEApplicationJSON),
		middleware.VerifyWebhookSignature(webhookSecret),
	)
}
