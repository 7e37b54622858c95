package pkgtrace

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the tracer handed out by New.
const InstrumentationName = "github.com/diasna/tng"

// Options configures tracing.
type Options struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	// Output is a file path for exported spans; empty means stdout.
	Output string
}

// New returns a tracer and a shutdown function that flushes pending spans.
func New(opts Options) (trace.Tracer, func(context.Context) error, error) {
	if !opts.Enabled {
		return noop.NewTracerProvider().Tracer(InstrumentationName), func(context.Context) error { return nil }, nil
	}

	var w io.Writer = os.Stdout
	var file *os.File
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return nil, nil, err
		}
		file = f
		w = f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, nil, err
	}

	tp, err := NewProvider(opts.ServiceName, opts.ServiceVersion, exporter)
	if err != nil {
		return nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if file != nil {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}

	return tp.Tracer(InstrumentationName), shutdown, nil
}

// NewProvider builds a tracer provider around the supplied exporter.
func NewProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	), nil
}

// End records err on the span (if any) and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
