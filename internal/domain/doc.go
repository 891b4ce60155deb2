// Package domain 상품 보강 파이프라인의 모든 단계가 공유하는 값 타입을 정의합니다.
package domain
