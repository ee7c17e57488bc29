package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdoutLogger(t *testing.T) {
	var b bytes.Buffer
	l := &stdoutLogger{logger: log.New(&b, "", 0)}

	l.LogSample("ignored", 1)
	assert.Empty(t, b.String())

	l.LogAggregateSamples("work", 0.001, 0.002, 0.004)
	assert.Equal(t, "work p50: 0.001, p75: 0.002, p95: 0.004\n", b.String())

	b.Reset()
	l.LogReport("bench\n")
	assert.Equal(t, "report:\nbench\n", b.String())
}
