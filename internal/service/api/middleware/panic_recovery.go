package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/darkkaiser/product-enricher/internal/service/api/constants"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
	"github.com/labstack/echo/v4"
)

const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 패닉을 복구하고 스택 트레이스와 함께 기록하는 미들웨어입니다.
// 복구된 패닉은 500 응답으로 변환됩니다. 다른 미들웨어의 패닉도 잡을 수 있도록 가장 먼저 등록해야 합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				// 연결 중단 신호는 net/http 서버가 처리해야 합니다.
				if r == http.ErrAbortHandler {
					panic(r)
				}

				recovered, ok := r.(error)
				if !ok {
					recovered = apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
				}

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error": recovered,
					"stack": string(stack[:length]),
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Error("PANIC RECOVERED")

				c.Error(recovered)
			}()

			return next(c)
		}
	}
}
