package log

import "github.com/sirupsen/logrus"

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	PanicLevel Level = logrus.PanicLevel
	FatalLevel Level = logrus.FatalLevel
	ErrorLevel Level = logrus.ErrorLevel
	WarnLevel  Level = logrus.WarnLevel
	InfoLevel  Level = logrus.InfoLevel
	DebugLevel Level = logrus.DebugLevel
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

// Fields logrus.Fields의 별칭입니다.
type Fields = logrus.Fields

// Entry logrus.Entry의 별칭입니다.
type Entry = logrus.Entry

// Formatter logrus.Formatter의 별칭입니다.
type Formatter = logrus.Formatter

// Format 파일과 콘솔에 기록되는 로그 라인의 형식입니다.
type Format string

const (
	// FormatText 사람이 읽기 쉬운 key=value 형식 (기본값)
	FormatText Format = "text"

	// FormatJSON 로그 수집기가 파싱하기 쉬운 JSON 형식
	FormatJSON Format = "json"
)

// Logger logrus.Logger의 별칭입니다.
type Logger = logrus.Logger
