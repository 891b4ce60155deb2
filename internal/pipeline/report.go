package pipeline

import (
	"fmt"
	"strings"
)

// StepStatus 갱신 단계 하나의 실행 결과입니다.
type StepStatus string

const (
	StatusSucceeded StepStatus = "succeeded"
	StatusFailed    StepStatus = "failed"
	StatusSkipped   StepStatus = "skipped"
)

// StepOutcome 갱신 단계 하나의 실행 결과와 진단 정보입니다.
type StepOutcome struct {
	Kind   StepKind
	Target string
	Status StepStatus

	// Fallback 가격 갱신이 GraphQL 경로로 수행(또는 시도)되었는지 여부
	Fallback bool

	Err    error
	Detail string
}

func (o StepOutcome) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(%s): %s", o.Kind, o.Target, o.Status)
	if o.Fallback {
		sb.WriteString(" [fallback]")
	}
	if o.Detail != "" {
		sb.WriteString(" - ")
		sb.WriteString(o.Detail)
	}
	if o.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(o.Err.Error())
	}
	return sb.String()
}

// OutcomeReport 이벤트 하나에 대한 갱신 실행 결과입니다.
type OutcomeReport struct {
	ProductGID string
	Steps      []StepOutcome

	// Aborted 연결 단절이나 처리 시간 초과로 남은 단계를 실행하지 못했는지 여부
	Aborted     bool
	AbortReason error

	required map[int]bool
}

func newOutcomeReport(productGID string) *OutcomeReport {
	return &OutcomeReport{ProductGID: productGID, required: make(map[int]bool)}
}

func (r *OutcomeReport) record(step PlannedStep, outcome StepOutcome) {
	if step.Required {
		r.required[len(r.Steps)] = true
	}
	r.Steps = append(r.Steps, outcome)
}

// Succeeded 실행이 중단되지 않았고 모든 필수 단계가 성공했는지 반환합니다.
// 선택 단계의 실패는 결과에 영향을 주지 않으며 Diagnostics로만 보고됩니다.
func (r *OutcomeReport) Succeeded() bool {
	if r.Aborted {
		return false
	}
	for i := range r.required {
		if r.Steps[i].Status != StatusSucceeded {
			return false
		}
	}
	return true
}

// Diagnostics 실패했거나 에러와 함께 생략된 단계의 설명 목록을 반환합니다.
func (r *OutcomeReport) Diagnostics() []string {
	var out []string
	if r.Aborted && r.AbortReason != nil {
		out = append(out, "aborted: "+r.AbortReason.Error())
	}
	for _, s := range r.Steps {
		if s.Status == StatusFailed || (s.Status == StatusSkipped && s.Err != nil) {
			out = append(out, s.String())
		}
	}
	return out
}

// Count 지정된 상태의 단계 수를 반환합니다.
func (r *OutcomeReport) Count(status StepStatus) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Find 종류와 대상이 일치하는 단계 결과를 반환합니다.
func (r *OutcomeReport) Find(kind StepKind, target string) (StepOutcome, bool) {
	for _, s := range r.Steps {
		if s.Kind == kind && s.Target == target {
			return s, true
		}
	}
	return StepOutcome{}, false
}
