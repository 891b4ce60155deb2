package middleware

import (
	"mime"
	"strings"

	"github.com/darkkaiser/product-enricher/internal/service/api/constants"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
	"github.com/labstack/echo/v4"
)

// ValidateContentType 요청의 Content-Type이 expected와 일치하는지 검사하는 미들웨어입니다.
// 본문이 없는 요청은 검사하지 않습니다. 파라미터(charset 등)는 비교에서 제외합니다.
func ValidateContentType(expected string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || !strings.EqualFold(mediaType, expected) {
				applog.WithComponentAndFields(constants.ComponentContentType, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"path":       req.URL.Path,
					"expected":   expected,
					"actual":     contentType,
					"remote_ip":  c.RealIP(),
				}).Warn("지원하지 않는 Content-Type 요청이 거부되었습니다")

				return ErrUnsupportedMediaType
			}

			return next(c)
		}
	}
}
