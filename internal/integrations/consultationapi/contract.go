package consultationapi

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс записи метрик обращений к внешнему API
// Может быть nil, если метрики выключены
type MetricsRecorder interface {
	ObserveUpstreamRequest(operation, outcome string, seconds float64)
}
