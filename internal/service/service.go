// Package service 백그라운드에서 실행되는 서비스의 공통 인터페이스를 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 생명주기를 가지는 백그라운드 서비스입니다.
//
// Start는 즉시 반환해야 하며, ctx가 취소되어 서비스가 완전히 종료되면 wg.Done을 호출합니다.
// 시작 전에 실패하여 에러를 반환하는 경우에도 wg.Done 호출은 서비스의 책임입니다.
type Service interface {
	Start(ctx context.Context, wg *sync.WaitGroup) error
}
