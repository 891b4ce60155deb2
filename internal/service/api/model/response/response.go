package response

// SuccessResponse 요청이 정상 처리되었을 때의 응답입니다.
type SuccessResponse struct {
	// 결과 코드 (0: 성공)
	ResultCode int `json:"result_code" example:"0"`

	Message string `json:"message,omitempty" example:"상품 보강이 완료되었습니다"`
}

// ErrorResponse 에러 응답입니다. 내부 에러 분류는 응답에 포함하지 않습니다.
type ErrorResponse struct {
	// 결과 코드 (HTTP 상태 코드와 동일)
	ResultCode int `json:"result_code" example:"400"`

	Message string `json:"message" example:"잘못된 상품 이벤트 형식입니다"`
}
