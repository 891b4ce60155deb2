package pipeline

// 로깅용 컴포넌트 이름
const (
	ComponentPipeline     = "pipeline"
	ComponentOrchestrator = "pipeline.orchestrator"
)
