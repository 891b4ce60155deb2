package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"github.com/darkkaiser/product-enricher/internal/service/api/constants"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
	"github.com/labstack/echo/v4"
)

// VerifyWebhookSignature 웹훅 본문의 HMAC-SHA256 서명(X-Shopify-Hmac-Sha256, Base64)을 검증합니다.
//
// secret이 비어있으면 검증 없이 통과시킵니다. 검증을 위해 읽은 본문은 다음 핸들러가
// 다시 읽을 수 있도록 복원합니다. BodyLimit 미들웨어 뒤에 등록해야 합니다.
func VerifyWebhookSignature(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if len(key) == 0 {
			return next
		}

		return func(c echo.Context) error {
			req := c.Request()

			signature := strings.TrimSpace(req.Header.Get(constants.HeaderShopifyHmac))
			if signature == "" {
				logSignatureRejected(c, "서명 헤더 없음")
				return ErrMissingSignature
			}

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return ErrBodyReadFailed
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			if !ValidSignature(key, body, signature) {
				logSignatureRejected(c, "서명 불일치")
				return ErrInvalidSignature
			}

			return next(c)
		}
	}
}

// ValidSignature body의 HMAC-SHA256 서명이 signature(Base64)와 일치하는지 상수 시간으로 비교합니다.
func ValidSignature(key, body []byte, signature string) bool {
	expected, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(body)

	return hmac.Equal(mac.Sum(nil), expected)
}

// Sign body의 HMAC-SHA256 서명을 Base64로 반환합니다.
func Sign(key, body []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func logSignatureRejected(c echo.Context, reason string) {
	applog.WithComponentAndFields(constants.ComponentSignature, applog.Fields{
		"reason":     reason,
		"topic":      c.Request().Header.Get(constants.HeaderShopifyTopic),
		"shop":       c.Request().Header.Get(constants.HeaderShopifyShopDomain),
		"remote_ip":  c.RealIP(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).Warn("웹훅 서명 검증 실패로 요청을 거부합니다")
}
