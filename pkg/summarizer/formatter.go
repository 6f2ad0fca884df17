package summarizer

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// Translator maps a label to its localized form.
type Translator func(key string) string

// Option configures a formatter.
type Option func(*options)

type options struct {
	translate Translator
}

// WithTranslator localizes headings and labels.
func WithTranslator(t Translator) Option {
	return func(o *options) {
		o.translate = t
	}
}

func buildOptions(opts []Option) options {
	o := options{translate: func(key string) string { return key }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
