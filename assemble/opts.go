package assemble

import (
	"io"
	"log/slog"
)

type assembleOpts struct {
	logger       *slog.Logger
	fileTree     io.Writer
	fragmentRoot string
}

type AssembleOption func(*assembleOpts)

func WithLogger(l *slog.Logger) AssembleOption {
	return func(o *assembleOpts) { o.logger = l }
}

// WithFileTree prints the nesting of the fragment files to w as they
// are visited, one line per file:
//
//	<indent><token name>: <token edge length> <mapping edge length>
func WithFileTree(w io.Writer) AssembleOption {
	return func(o *assembleOpts) { o.fileTree = w }
}

// WithFragmentRoot sets the directory mapping table files are relative
// to. It defaults to the directory of the base file.
func WithFragmentRoot(dir string) AssembleOption {
	return func(o *assembleOpts) { o.fragmentRoot = dir }
}
