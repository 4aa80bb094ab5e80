// Package autodiff implements a dual-pass computation graph engine.
//
// A graph is composed from nodes: named Inputs resolved from a Feed,
// Variables and Constants holding values, and Operations over one or two
// input nodes. Build collects the nodes reachable from a list of roots and
// fixes a topological order.
//
// Architecture:
//   - Evaluate: forward pass in topological order, producing an Evaluation
//   - Differentiate: reverse-mode pass from a seed node, producing Gradients
//     where each node's gradient is the sum over its consumers
//   - Operation rules live in the ops subpackage
//   - Engine: the same passes wrapped with logging, tracing and metrics
//
// Nodes never store evaluated values or gradients, so one Graph can serve
// any number of evaluations, including concurrent ones with separate feeds.
//
// Usage:
//
//	x := autodiff.Input("x")
//	a := autodiff.Variable("A", tensor.Scalar(1))
//	b := autodiff.Variable("B", tensor.Scalar(2))
//	z := b.Mul(a.Add(x.PowScalar(2)))
//
//	g, _ := autodiff.Build(z)
//	ev, _ := autodiff.Evaluate(g, autodiff.FeedScalars(map[string]float64{"x": 3}))
//	grads, _ := autodiff.Differentiate(g, ev, z)
//	fmt.Println(ev.Value(z), grads.Of(x)) // 20 12
package autodiff

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/born-ml/vizml/internal/config"
	"github.com/born-ml/vizml/internal/tensor"
)

const instrumentationName = "github.com/born-ml/vizml/autodiff"

// Engine runs graph passes with structured logging, tracing and metrics.
// Engine is safe for concurrent use.
type Engine struct {
	cfg    config.Config
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter

	// Metrics (initialized lazily)
	metricsOnce  sync.Once
	passLatency  metric.Float64Histogram
	passTotal    metric.Int64Counter
	passFailures metric.Int64Counter
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = logger }
}

// WithTracerProvider sets the tracer provider used when tracing is enabled.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(o *engineOptions) { o.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider used when metrics are enabled.
func WithMeterProvider(mp metric.MeterProvider) EngineOption {
	return func(o *engineOptions) { o.meterProvider = mp }
}

// NewEngine validates cfg and creates an Engine.
//
// Without WithLogger, logs go to stderr at cfg.Observability.LogLevel.
// Without explicit providers the global OpenTelemetry providers are used;
// disabled tracing or metrics install no-op providers instead.
func NewEngine(cfg config.Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.Observability.SlogLevel(),
		}))
	}

	var tp trace.TracerProvider = tracenoop.NewTracerProvider()
	if cfg.Observability.TracingEnabled {
		tp = o.tracerProvider
		if tp == nil {
			tp = otel.GetTracerProvider()
		}
	}

	var mp metric.MeterProvider = metricnoop.NewMeterProvider()
	if cfg.Observability.MetricsEnabled {
		mp = o.meterProvider
		if mp == nil {
			mp = otel.GetMeterProvider()
		}
	}

	return &Engine{
		cfg:    cfg,
		logger: logger,
		tracer: tp.Tracer(instrumentationName),
		meter:  mp.Meter(instrumentationName),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// initMetrics lazily initializes metrics.
// Failed instruments are logged and left nil; passes still run.
func (e *Engine) initMetrics() {
	e.metricsOnce.Do(func() {
		var initErrors []string

		var err error
		e.passLatency, err = e.meter.Float64Histogram("vizml_pass_duration_seconds",
			metric.WithDescription("Time spent in a forward or backward pass"),
			metric.WithUnit("s"),
		)
		if err != nil {
			initErrors = append(initErrors, "pass_latency: "+err.Error())
		}

		e.passTotal, err = e.meter.Int64Counter("vizml_pass_total",
			metric.WithDescription("Number of forward and backward passes"),
		)
		if err != nil {
			initErrors = append(initErrors, "pass_total: "+err.Error())
		}

		e.passFailures, err = e.meter.Int64Counter("vizml_pass_failure_total",
			metric.WithDescription("Number of failed forward and backward passes"),
		)
		if err != nil {
			initErrors = append(initErrors, "pass_failures: "+err.Error())
		}

		if len(initErrors) > 0 {
			e.logger.Error("failed to initialize some engine metrics",
				slog.Int("failed_count", len(initErrors)),
				slog.Any("errors", initErrors),
			)
		}
	})
}

// Forward evaluates g with feed inside a "vizml.Forward" span.
func (e *Engine) Forward(ctx context.Context, g *Graph, feed Feed) (*Evaluation, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	var ev *Evaluation
	err := e.pass(ctx, passForward, newRunID(), g, func() error {
		var err error
		ev, err = Evaluate(g, feed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Backward differentiates seed over ev inside a "vizml.Backward" span.
func (e *Engine) Backward(ctx context.Context, g *Graph, ev *Evaluation, seed *Node) (*Gradients, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	var grads *Gradients
	err := e.pass(ctx, passBackward, newRunID(), g, func() error {
		var err error
		grads, err = Differentiate(g, ev, seed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return grads, nil
}

// Result is the outcome of Engine.Run.
type Result struct {
	RunID      string
	Graph      *Graph
	Evaluation *Evaluation
	Gradients  *Gradients
	Duration   time.Duration
}

// Value returns the forward value of the root.
func (r *Result) Value() *tensor.Tensor {
	return r.Evaluation.Value(r.Gradients.Seed())
}

// Run builds the graph of root, evaluates it with feed and differentiates
// root with respect to every upstream node. Both passes share one run id.
func (e *Engine) Run(ctx context.Context, root *Node, feed Feed) (*Result, error) {
	start := time.Now()
	runID := newRunID()

	g, err := Build(root)
	if err != nil {
		e.logger.Error("graph build failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	var ev *Evaluation
	err = e.pass(ctx, passForward, runID, g, func() error {
		var err error
		ev, err = Evaluate(g, feed)
		return err
	})
	if err != nil {
		return nil, err
	}

	var grads *Gradients
	err = e.pass(ctx, passBackward, runID, g, func() error {
		var err error
		grads, err = Differentiate(g, ev, root)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:      runID,
		Graph:      g,
		Evaluation: ev,
		Gradients:  grads,
		Duration:   time.Since(start),
	}, nil
}

// CheckGradients runs CheckGradients with the engine's gradcheck settings and
// logs every node that fails the comparison.
func (e *Engine) CheckGradients(ctx context.Context, g *Graph, feed Feed, seed *Node, wrt ...*Node) ([]GradCheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results, err := CheckGradients(g, feed, seed, wrt, GradCheckOptions{
		Epsilon:   e.cfg.GradCheck.Epsilon,
		Tolerance: e.cfg.GradCheck.Tolerance,
		Workers:   e.cfg.GradCheck.Workers,
	})
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if !r.Passed {
			e.logger.Warn("gradient check failed",
				slog.String("node", r.Node.String()),
				slog.Float64("max_error", r.MaxError),
			)
		}
	}
	return results, nil
}

// pass runs fn as one observed pass over g.
func (e *Engine) pass(ctx context.Context, name, runID string, g *Graph, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.initMetrics()

	spanName := "vizml.Forward"
	if name == passBackward {
		spanName = "vizml.Backward"
	}
	ctx, span := e.tracer.Start(ctx, spanName,
		trace.WithAttributes(
			attribute.String("vizml.run_id", runID),
			attribute.Int("vizml.node_count", g.Len()),
		),
	)
	defer span.End()

	start := time.Now()
	err := fn()
	duration := time.Since(start)

	attrs := metric.WithAttributes(attribute.String("pass", name))
	if e.passLatency != nil {
		e.passLatency.Record(ctx, duration.Seconds(), attrs)
	}
	if e.passTotal != nil {
		e.passTotal.Add(ctx, 1, attrs)
	}

	if err != nil {
		if e.passFailures != nil {
			e.passFailures.Add(ctx, 1, attrs)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error("pass failed",
			slog.String("pass", name),
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return err
	}

	span.SetStatus(codes.Ok, "")
	e.logger.Debug("pass completed",
		slog.String("pass", name),
		slog.String("run_id", runID),
		slog.Int("nodes", g.Len()),
		slog.Duration("duration", duration),
	)
	return nil
}

func newRunID() string {
	return uuid.NewString()[:12]
}
