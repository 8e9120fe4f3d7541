package tracex

import (
	"context"

	"github.com/clinia/apix/loggerx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	ComponentNameSeparator = "."
	InstrumentationName    = "github.com/clinia/apix"
)

func ComponentName(packageName, structName string) string {
	return packageName + ComponentNameSeparator + structName
}

/*
Instrument starts a span named after the component and returns a logger tagged with the same component.
`span.End()` must be called at the end of using the span.

	const myComponentName = "xpackage.xStruct"

	func (xs *xStruct) process(ctx context.Context) error {
		ctx, span, l := tracex.Instrument(ctx, xs.l, xs.tp, myComponentName, "process")
		defer span.End()
	}
*/
func Instrument(ctx context.Context, l *loggerx.Logger, tp trace.TracerProvider, componentName string, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span, *loggerx.Logger) {
	fullComponentName := ComponentName(componentName, name)
	ctx, span := tp.Tracer(InstrumentationName).Start(ctx, fullComponentName, opts...)
	return ctx, span, l.WithFields(attribute.Key("component").String(fullComponentName))
}
