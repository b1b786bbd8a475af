package sparql

// DefaultLimit is the LIMIT applied unless overridden.
const DefaultLimit = 100

type options struct {
	offset    *int
	limit     *int
	template  bool
	noComment bool
}

func newOptions(opts []Option) options {
	limit := DefaultLimit
	o := options{limit: &limit}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures compilation.
type Option func(*options)

// WithOffset adds an OFFSET to the trailer.
func WithOffset(n int) Option {
	return func(o *options) { o.offset = &n }
}

// WithLimit replaces the default LIMIT.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = &n }
}

// WithoutLimit drops the LIMIT.
func WithoutLimit() Option {
	return func(o *options) { o.limit = nil }
}

// WithTemplate renders parameter values as {{name}} placeholders, for
// stanza query templates.
func WithTemplate() Option {
	return func(o *options) { o.template = true }
}

// WithoutComment leaves out the # header lines.
func WithoutComment() Option {
	return func(o *options) { o.noComment = true }
}
