// Package convert holds the conversion registry: built-in, expression-level
// conversions between primitive, wrapper, and well-known types. The registry
// never recurses and never allocates new types; absence of a conversion is
// not an error, it just tells the resolver to try other strategies.
package convert

// Context carries the per-call hints a provider may consult.
type Context struct {
	// Format is an optional date/number layout pattern. Providers that do
	// not format ignore it.
	Format string
}

// Conversion is a pair of expression fragments wrapping a value reference:
// the converted expression is Open + ref + Close. Imports lists the package
// paths the emitter must import for the expression to compile.
type Conversion struct {
	Open    string
	Close   string
	Imports []string
}

// Provider is a stateless conversion strategy for one ordered type pair.
// Apply is a total function: once the pair matched, it always yields a
// usable conversion and never reports an error.
type Provider interface {
	Apply(ctx Context) Conversion
}

// simpleProvider wraps a reference with fixed open/close fragments.
type simpleProvider struct {
	open    string
	close   string
	imports []string
}

func (p simpleProvider) Apply(Context) Conversion {
	return Conversion{Open: p.open, Close: p.close, Imports: p.imports}
}

// timeFormatProvider renders time.Time to string honoring the context's
// format pattern.
type timeFormatProvider struct{}

func (timeFormatProvider) Apply(ctx Context) Conversion {
	layout := layoutExpr(ctx)

	return Conversion{
		Close:   ".Format(" + layout + ")",
		Imports: []string{"time"},
	}
}

// timeParseProvider parses a string into time.Time honoring the context's
// format pattern. Parse failures yield the zero time; error-returning
// conversions belong to user-declared methods, not the builtin registry.
type timeParseProvider struct{}

func (timeParseProvider) Apply(ctx Context) Conversion {
	layout := layoutExpr(ctx)

	return Conversion{
		Open:    "func(s string) time.Time { t, _ := time.Parse(" + layout + ", s); return t }(",
		Close:   ")",
		Imports: []string{"time"},
	}
}

func layoutExpr(ctx Context) string {
	if ctx.Format != "" {
		return `"` + ctx.Format + `"`
	}

	return "time.RFC3339Nano"
}
