package log

import "github.com/sirupsen/logrus"

// silentFormatter 표준 로거의 출력(io.Discard)에 대한 불필요한 포맷팅 비용을 없애기 위한 포맷터입니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}
