package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/kcz17/benchman/benchman"
	"github.com/kcz17/benchman/config"
	"github.com/kcz17/benchman/internal/workload"
	"github.com/kcz17/benchman/logging"
	"github.com/kcz17/benchman/responsetimecollector"
	"github.com/kcz17/benchman/serving"
)

func main() {
	conf := config.ReadConfig()

	var logger logging.Logger
	switch *conf.Logging.Driver {
	case "noop":
		logger = logging.NewNoopLogger()
	case "stdout":
		logger = logging.NewStdoutLogger()
	case "influxdb":
		influxDBLogger := logging.NewInfluxDBLogger(
			*conf.Logging.InfluxDB.Host,
			*conf.Logging.InfluxDB.Token,
			*conf.Logging.InfluxDB.Org,
			*conf.Logging.InfluxDB.Bucket,
		)
		defer influxDBLogger.Close()
		logger = influxDBLogger
	default:
		log.Fatalf("expected logging.driver one of {noop, stdout, influxdb}; got %s", *conf.Logging.Driver)
	}

	collectors := responsetimecollector.NewTagged(func() responsetimecollector.Collector {
		return responsetimecollector.NewTachymeterCollector(*conf.Benchmark.Window)
	})
	bm := benchman.NewWithOptions(*conf.Benchmark.Label, &benchman.Options{
		Observers: []benchman.Observer{
			collectors,
			benchman.ObserverFunc(func(tag string, d time.Duration) {
				logger.LogSample(tag, d.Seconds())
			}),
		},
	})

	aggregationLoop, err := workload.StartNewAggregationLoop(
		collectors,
		logger,
		time.Duration(*conf.Benchmark.SamplePeriod*float64(time.Second)),
	)
	if err != nil {
		log.Fatalf("expected workload.StartNewAggregationLoop() returns nil err; got err = %v", err)
	}

	if *conf.API.Enabled {
		api := &serving.APIServer{BenchMan: bm, Collectors: collectors}
		go func() {
			addr := fmt.Sprintf(":%d", *conf.API.Port)
			if err := api.ListenAndServe(addr); err != nil {
				log.Fatalf("error serving API on %s: %v", addr, err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = workload.Run(ctx, bm, &workload.Options{
		Tags:       conf.Benchmark.Tags,
		Workers:    *conf.Benchmark.Workers,
		Iterations: *conf.Benchmark.Iterations,
		Mean:       millisecondsToDuration(*conf.Workload.MeanMs),
		StdDev:     millisecondsToDuration(*conf.Workload.StdDevMs),
		Max:        millisecondsToDuration(*conf.Workload.MaxMs),
		Seed:       *conf.Workload.Seed,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("error running workload: %v", err)
	}
	aggregationLoop.Stop()

	logger.LogReport(bm.String())
	if err := bm.Print(os.Stdout); err != nil {
		log.Fatalf("error printing report: %v", err)
	}
}

func millisecondsToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
