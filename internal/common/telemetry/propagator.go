package telemetry

import "go.opentelemetry.io/otel/propagation"

// NewPropagator: W3C Trace Context + Baggage 전파기를 생성합니다.
// 들어오는 요청(otelhttp 핸들러)과 원격 힌트 API 호출(otelhttp 트랜스포트)이 같은 전파기를 씁니다.
func NewPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}
