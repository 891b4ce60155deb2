package middleware

import (
	"github.com/darkkaiser/product-enricher/internal/service/api/constants"
	"github.com/darkkaiser/product-enricher/internal/service/api/httputil"
)

var (
	// ErrRateLimitExceeded 요청 속도 제한을 초과한 경우
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgRateLimitExceeded)

	// ErrUnsupportedMediaType Content-Type이 기대한 형식이 아닌 경우
	ErrUnsupportedMediaType = httputil.NewUnsupportedMediaTypeError(constants.ErrMsgUnsupportedMediaType)

	// ErrMissingSignature 서명 검증이 켜져 있는데 서명 헤더가 없는 경우
	ErrMissingSignature = httputil.NewUnauthorizedError(constants.ErrMsgMissingSignature)

	// ErrInvalidSignature 본문의 HMAC 서명이 일치하지 않는 경우
	ErrInvalidSignature = httputil.NewUnauthorizedError(constants.ErrMsgInvalidSignature)

	ErrBodyReadFailed = httputil.NewBadRequestError(constants.ErrMsgBodyReadFailed)
)
