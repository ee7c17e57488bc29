package logging

import (
	"log"
)

// stdoutLogger logs the output to standard output.
type stdoutLogger struct {
	logger *log.Logger
}

func NewStdoutLogger() *stdoutLogger {
	return &stdoutLogger{logger: log.Default()}
}

func (*stdoutLogger) LogSample(string, float64) {
	// Do not log individual samples to stdout.
	return
}

func (l *stdoutLogger) LogAggregateSamples(tag string, p50 float64, p75 float64, p95 float64) {
	l.logger.Printf("%s p50: %.3f, p75: %.3f, p95: %.3f\n", tag, p50, p75, p95)
}

func (l *stdoutLogger) LogReport(report string) {
	l.logger.Printf("report:\n%s", report)
}
