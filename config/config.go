package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Benchmark Benchmark `mapstructure:"benchmark" validate:"required"`
	Workload  Workload  `mapstructure:"workload" validate:"required"`
	Logging   Logging   `mapstructure:"logging" validate:"required"`
	API       API       `mapstructure:"api" validate:"required"`
}

type Benchmark struct {
	Label *string  `mapstructure:"label" validate:"required"`
	Tags  []string `mapstructure:"tags" validate:"required,min=1,dive,required"`
	// Workers is the number of goroutines measuring concurrently, all sharing
	// the same results.
	Workers    *int `mapstructure:"workers" validate:"required,min=1"`
	Iterations *int `mapstructure:"iterations" validate:"required,min=1"`
	// SamplePeriod is the number of seconds between logging rolling
	// aggregations of each tag.
	SamplePeriod *float64 `mapstructure:"samplePeriod" validate:"required,gt=0"`
	// Window is the number of most recent samples per tag in each rolling
	// aggregation.
	Window *int `mapstructure:"window" validate:"required,min=1"`
}

// Workload configures the synthetic work measured by each stopwatch.
type Workload struct {
	MeanMs   *float64 `mapstructure:"meanMs" validate:"required,gte=0"`
	StdDevMs *float64 `mapstructure:"stdDevMs" validate:"required,gt=0"`
	MaxMs    *float64 `mapstructure:"maxMs" validate:"required,gt=0"`
	// Seed makes the workload reproducible. Zero seeds from the current time.
	Seed *uint64 `mapstructure:"seed" validate:"required"`
}

type Logging struct {
	Driver   *string  `mapstructure:"driver" validate:"required,oneof=noop stdout influxdb"`
	InfluxDB InfluxDB `mapstructure:"influxdb"`
}

type InfluxDB struct {
	Host   *string `mapstructure:"host"`
	Token  *string `mapstructure:"token"`
	Org    *string `mapstructure:"org"`
	Bucket *string `mapstructure:"bucket"`
}

type API struct {
	Enabled *bool `mapstructure:"enabled" validate:"required"`
	Port    *int  `mapstructure:"port" validate:"required,min=1,max=65535"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Benchmark.Label", "benchman")
	v.SetDefault("Benchmark.Tags", []string{"work"})
	v.SetDefault("Benchmark.Workers", 4)
	v.SetDefault("Benchmark.Iterations", 100)
	v.SetDefault("Benchmark.SamplePeriod", 1)
	v.SetDefault("Benchmark.Window", 1000)

	v.SetDefault("Workload.MeanMs", 5)
	v.SetDefault("Workload.StdDevMs", 2)
	v.SetDefault("Workload.MaxMs", 50)
	v.SetDefault("Workload.Seed", 0)

	v.SetDefault("Logging.Driver", "noop")

	v.SetDefault("API.Enabled", false)
	v.SetDefault("API.Port", 8079)
}

// Read decodes and validates the configuration held by v, filling in defaults
// for anything v does not set.
func Read(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not decode configuration: err = %w", err)
	}
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	if *config.Logging.Driver == "influxdb" {
		influx := config.Logging.InfluxDB
		if influx.Host == nil || influx.Token == nil || influx.Org == nil || influx.Bucket == nil {
			return errors.New("logging.influxdb requires host, token, org and bucket when logging.driver is influxdb")
		}
	}
	if *config.Workload.MaxMs < *config.Workload.MeanMs {
		return fmt.Errorf("workload.maxMs (%v) must not be less than workload.meanMs (%v)", *config.Workload.MaxMs, *config.Workload.MeanMs)
	}
	return nil
}

// ReadConfig reads config.yaml from the working directory or /app, with
// environment variables prefixed BENCHMAN_ taking precedence. A missing
// config file leaves every setting at its default. Invalid configuration
// exits the process.
func ReadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("benchman")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("no config.yaml found in . or /app; using defaults")
		} else {
			log.Fatalf("error when reading config file: err = %s", err)
		}
	}

	config, err := Read(v)
	if err == nil {
		return config
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		log.Fatalf("unable to load config: err = %s", err)
	}

	log.Printf("encountered validation errors:\n")
	for _, err := range validationErrs {
		fmt.Printf("\t%s\n", err.Error())
	}
	fmt.Println("Check your configuration file and try again.")
	os.Exit(1)
	return nil
}
