package trace

import "context"

// binding is what a context carries: the tracer and the innermost open span.
type binding struct {
	tracer Tracer
	span   uint64
}

type bindingKey struct{}

func bindingOf(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(bindingKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// FromContext returns the tracer bound to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return bindingOf(ctx).tracer
}

// WithTracer binds t to ctx. The enclosing span, if any, is kept.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if t == nil {
		t = Nop
	}
	b := bindingOf(ctx)
	b.tracer = t
	return context.WithValue(ctx, bindingKey{}, b)
}

// WithSpan makes s the parent of spans begun from the returned context.
// A nil or disabled span leaves ctx unchanged.
func WithSpan(ctx context.Context, s *Span) context.Context {
	if ctx == nil || s.ID() == 0 {
		return ctx
	}
	b := bindingOf(ctx)
	b.span = s.ID()
	return context.WithValue(ctx, bindingKey{}, b)
}

// SpanFrom returns the ID of the innermost span bound to ctx, 0 at the root.
func SpanFrom(ctx context.Context) uint64 {
	return bindingOf(ctx).span
}
