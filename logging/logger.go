package logging

type Logger interface {
	LogSample(tag string, t float64)                                       // Takes in a sample in seconds.
	LogAggregateSamples(tag string, p50 float64, p75 float64, p95 float64) // Takes in percentiles in seconds.
	LogReport(report string)
}

// noopLogger does not perform any logging.
type noopLogger struct{}

func NewNoopLogger() *noopLogger {
	return &noopLogger{}
}

func (*noopLogger) LogSample(string, float64) {
	return
}

func (*noopLogger) LogAggregateSamples(string, float64, float64, float64) {
	return
}

func (*noopLogger) LogReport(string) {
	return
}
