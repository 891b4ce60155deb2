// Package log logrus 기반의 전역 로깅 시스템을 제공합니다.
//
// 모든 로그는 컴포넌트 이름과 함께 기록되어, 파이프라인의 어느 단계에서 발생한 로그인지
// 쉽게 추적할 수 있습니다.
//
//	applog.WithComponentAndFields("pipeline.orchestrator", applog.Fields{
//	    "product_id": event.GraphQLID,
//	}).Info("상품 보강 완료")
package log

import "github.com/sirupsen/logrus"

// SetDebugMode debug가 true이면 TraceLevel, 아니면 InfoLevel로 전역 로그 레벨을 변경합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// IsDebugEnabled 현재 로그 레벨이 DEBUG 이하를 기록하는지 반환합니다.
func IsDebugEnabled() bool {
	return logrus.IsLevelEnabled(DebugLevel)
}

// WithComponent component 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 로그 엔트리를 반환합니다.
// fields에 component 키가 있더라도 인자로 전달된 component가 우선합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component
	return logrus.WithFields(newFields)
}

// StandardLogger 전역 로거를 반환합니다. 외부 프레임워크의 로거를 연결할 때 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}
