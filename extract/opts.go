package extract

import "log/slog"

type extractOpts struct {
	ancestors int
	logger    *slog.Logger
}

type ExtractOption func(*extractOpts)

// IncludedAncestors wraps every extracted subtree in n of its ancestors,
// keeping only their names.
func IncludedAncestors(n int) ExtractOption {
	return func(o *extractOpts) { o.ancestors = n }
}

func WithLogger(l *slog.Logger) ExtractOption {
	return func(o *extractOpts) { o.logger = l }
}

func getOpts(opts []ExtractOption) *extractOpts {
	o := &extractOpts{logger: slog.Default()}
	for _, f := range opts {
		f(o)
	}
	return o
}
