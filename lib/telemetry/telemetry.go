package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"gradecalc/lib/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry holds the providers that were installed, either may be nil when
// its signal is disabled.
type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

// Shutdown flushes and stops the providers, it is a no-op on the zero value.
func (t Telemetry) Shutdown(ctx context.Context) error {
	errlist := []error{}
	if t.TracerProvider != nil {
		err := t.TracerProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	if t.MeterProvider != nil {
		err := t.MeterProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}

const ConfigName = "telemetry.json5"

// LoadConfig searches up the filesystem from the cwd for telemetry.json5
// and merges it over the defaults. No file means nothing gets exported.
func LoadConfig() (Config, error) {
	return configutil.Load(ConfigName, false, defaultConfig)
}

// SetupFromEnv sets up exporters from LoadConfig. When no endpoint is
// configured the global no-op providers are left alone and the zero
// Telemetry is returned.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Telemetry{}, err
	}
	return Setup(ctx, serviceName, cfg)
}

func Setup(ctx context.Context, serviceName string, cfg Config) (Telemetry, error) {
	if !cfg.Enabled() {
		slog.DebugContext(ctx, "no telemetry endpoints configured, exporters disabled")
		return Telemetry{}, nil
	}
	err := cfg.validate()
	if err != nil {
		return Telemetry{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName, cfg)
	if err != nil {
		return Telemetry{}, err
	}

	var tel Telemetry
	if cfg.Traces.Enabled() {
		exporter, err := newSpanExporter(ctx, cfg.Traces)
		if err != nil {
			return Telemetry{}, err
		}
		tel.TracerProvider = trace.NewTracerProvider(
			trace.WithBatcher(exporter),
			trace.WithResource(r),
		)
		otel.SetTracerProvider(tel.TracerProvider)
	}

	if cfg.Metrics.Enabled() {
		exporter, err := newMetricExporter(ctx, cfg.Metrics)
		if err != nil {
			tel.Shutdown(ctx)
			return Telemetry{}, err
		}
		interval := time.Duration(cfg.MetricIntervalSeconds) * time.Second
		tel.MeterProvider = metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(interval))),
			metric.WithResource(r),
		)
		otel.SetMeterProvider(tel.MeterProvider)
	}

	return tel, nil
}

var testSetupLock sync.Mutex
var setupTestEnvironments = map[string]bool{}

// SetupForTesting sets up telemetry in a testing environment, ensuring that
// it isn't set up more than once per service name.
func SetupForTesting(serviceName string) func() {
	testSetupLock.Lock()
	defer testSetupLock.Unlock()

	if setupTestEnvironments[serviceName] {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	InitSlog(true)
	tel, err := SetupFromEnv(context.Background(), serviceName)
	if err != nil {
		panic(err)
	}
	return func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			panic(err)
		}
	}
}
