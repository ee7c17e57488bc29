package config

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func TestRead_Defaults(t *testing.T) {
	config, err := Read(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "benchman", *config.Benchmark.Label)
	assert.Equal(t, []string{"work"}, config.Benchmark.Tags)
	assert.Equal(t, 4, *config.Benchmark.Workers)
	assert.Equal(t, 100, *config.Benchmark.Iterations)
	assert.Equal(t, float64(1), *config.Benchmark.SamplePeriod)
	assert.Equal(t, 1000, *config.Benchmark.Window)
	assert.Equal(t, float64(5), *config.Workload.MeanMs)
	assert.Equal(t, uint64(0), *config.Workload.Seed)
	assert.Equal(t, "noop", *config.Logging.Driver)
	assert.False(t, *config.API.Enabled)
	assert.Equal(t, 8079, *config.API.Port)
}

func TestRead_OverridesDefaults(t *testing.T) {
	v := newViper(t, `
benchmark:
  label: nested
  tags: [outer, inner]
  workers: 2
workload:
  meanMs: 1
  maxMs: 3
  seed: 42
logging:
  driver: stdout
api:
  enabled: true
  port: 9000
`)
	config, err := Read(v)
	require.NoError(t, err)

	assert.Equal(t, "nested", *config.Benchmark.Label)
	assert.Equal(t, []string{"outer", "inner"}, config.Benchmark.Tags)
	assert.Equal(t, 2, *config.Benchmark.Workers)
	assert.Equal(t, 100, *config.Benchmark.Iterations)
	assert.Equal(t, float64(3), *config.Workload.MaxMs)
	assert.Equal(t, uint64(42), *config.Workload.Seed)
	assert.Equal(t, "stdout", *config.Logging.Driver)
	assert.True(t, *config.API.Enabled)
	assert.Equal(t, 9000, *config.API.Port)
}

func TestRead_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "Unknown logging driver",
			yaml: "logging:\n  driver: syslog\n",
		},
		{
			name: "No workers",
			yaml: "benchmark:\n  workers: 0\n",
		},
		{
			name: "Empty tag",
			yaml: "benchmark:\n  tags: [\"\"]\n",
		},
		{
			name: "Port out of range",
			yaml: "api:\n  port: 70000\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(newViper(t, tt.yaml))
			require.Error(t, err)
			assert.IsType(t, validator.ValidationErrors{}, err)
		})
	}
}

func TestRead_InfluxDBRequiresConnectionSettings(t *testing.T) {
	_, err := Read(newViper(t, "logging:\n  driver: influxdb\n  influxdb:\n    host: http://localhost:8086\n"))
	assert.EqualError(t, err, "logging.influxdb requires host, token, org and bucket when logging.driver is influxdb")

	config, err := Read(newViper(t, `
logging:
  driver: influxdb
  influxdb:
    host: http://localhost:8086
    token: token
    org: org
    bucket: bucket
`))
	require.NoError(t, err)
	assert.Equal(t, "bucket", *config.Logging.InfluxDB.Bucket)
}

func TestRead_MaxBelowMean(t *testing.T) {
	_, err := Read(newViper(t, "workload:\n  meanMs: 10\n  maxMs: 5\n"))
	assert.EqualError(t, err, "workload.maxMs (5) must not be less than workload.meanMs (10)")
}
