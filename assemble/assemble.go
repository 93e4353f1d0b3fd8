package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/onezoom/oztree/debug"
	"github.com/onezoom/oztree/mapping"
	"github.com/onezoom/oztree/newick"
	"github.com/onezoom/oztree/token"
)

// Assembler builds trees against one mapping table.
type Assembler struct {
	table *mapping.Table
	opts  assembleOpts
}

// Report summarises one build.
type Report struct {
	FilesRead      int
	TokensResolved int
	// Missing lists the files that tokens named but that did not exist.
	Missing []string
}

func New(table *mapping.Table, opts ...AssembleOption) *Assembler {
	a := &Assembler{
		table: table,
		opts:  assembleOpts{logger: slog.Default()},
	}
	for _, f := range opts {
		f(&a.opts)
	}
	return a
}

// inclusion describes how the current file was reached.
type inclusion struct {
	tok    *token.Token
	expand bool
}

// run carries the state of one Build call through the recursion.
type run struct {
	*Assembler
	fragmentRoot  string
	referenceRoot string
	out           bytes.Buffer
	depth         int
	onPath        map[string]bool
	report        Report
}

// Build assembles the tree rooted at baseFile and writes it to w,
// terminated by ";\n". Reference subtrees are read from referenceRoot.
// Nothing is written unless the whole tree assembles.
func (a *Assembler) Build(w io.Writer, baseFile, referenceRoot string) (*Report, error) {
	r := &run{
		Assembler:     a,
		fragmentRoot:  a.opts.fragmentRoot,
		referenceRoot: referenceRoot,
		onPath:        map[string]bool{},
	}
	if r.fragmentRoot == "" {
		r.fragmentRoot = filepath.Dir(baseFile)
	}
	if _, err := r.process(baseFile, inclusion{expand: true}); err != nil {
		return nil, err
	}
	r.out.WriteString(";\n")
	if _, err := r.out.WriteTo(w); err != nil {
		return nil, err
	}
	return &r.report, nil
}

func (r *run) process(file string, inc inclusion) (bool, error) {
	logger := r.opts.logger
	logger.Debug("processing", "file", file, "depth", r.depth)
	if r.opts.fileTree != nil && inc.expand {
		r.printFileTree(inc)
	}

	d, err := os.ReadFile(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
		if inc.tok == nil {
			return false, fmt.Errorf("%w: %s", ErrMissingBase, file)
		}
		logger.Warn("subtree file does not exist", "file", file, "token", inc.tok.NodeName)
		r.report.Missing = append(r.report.Missing, file)
		return false, nil
	}
	r.report.FilesRead++

	tree := newick.Trim(d, true)
	if err := validate(tree); err != nil {
		return false, fmt.Errorf("%s: %w", file, err)
	}

	index := 0
	if inc.expand {
		key := filepath.Clean(file)
		if r.onPath[key] {
			return false, fmt.Errorf("%w: %s", ErrCycle, file)
		}
		r.onPath[key] = true
		defer delete(r.onPath, key)

		for _, tok := range token.Scan(tree) {
			r.out.Write(tree[index:tok.Start])
			res, err := tok.Resolve(r.table, r.fragmentRoot, r.referenceRoot)
			if err != nil {
				return false, fmt.Errorf("%s: %w", file, err)
			}
			if debug.Tokens() {
				logger.Debug("token", "file", file, "name", res.NodeName, "target", res.File, "expand", res.Expand())
			}
			r.depth++
			ok, err := r.process(res.File, inclusion{tok: &res, expand: res.Expand()})
			r.depth--
			if err != nil {
				return false, err
			}
			if ok {
				index = tok.End
				r.report.TokensResolved++
			} else {
				index = tok.Start
			}
		}
	}

	rest := tree[index:]
	j := bytes.LastIndexByte(rest, ')')
	r.out.Write(rest[:j+1])
	name, edge := r.trailer(string(rest[j+1:]), inc)
	r.out.WriteString(name)
	if edge != "" {
		r.out.WriteString(":" + edge)
	}
	return true, nil
}

// trailer picks the root name and edge length of an included file from
// its own trailing "name:length" and the including token.
func (r *run) trailer(last string, inc inclusion) (string, string) {
	lastName, lastEdge, _ := strings.Cut(last, ":")
	if i := strings.IndexByte(lastEdge, ':'); i >= 0 {
		lastEdge = lastEdge[:i]
	}
	var parentName string
	if inc.tok != nil {
		parentName = inc.tok.NodeName
	}
	if inc.tok != nil && inc.expand {
		edge := inc.tok.OverrideEdgeLength()
		if edge == "" {
			edge = lastEdge
		}
		return firstNonEmpty(inc.tok.OverrideTaxon(), lastName, parentName), edge
	}
	return firstNonEmpty(parentName, lastName), lastEdge
}

func (r *run) printFileTree(inc inclusion) {
	name, edge, mapEdge := "-", "-", "0"
	if inc.tok != nil {
		name = inc.tok.NodeName
		if inc.tok.EdgeLength != nil {
			edge = strconv.FormatFloat(*inc.tok.EdgeLength, 'f', -1, 64)
		}
		if e := inc.tok.OverrideEdgeLength(); e != "" {
			mapEdge = e
		}
	}
	fmt.Fprintf(r.opts.fileTree, "%s%s: %s %s\n", strings.Repeat("  ", r.depth), name, edge, mapEdge)
}

// validate scans text, which has had its semicolon removed, as a
// complete tree.
func validate(text []byte) error {
	buf := make([]byte, len(text)+1)
	copy(buf, text)
	buf[len(text)] = ';'
	s := newick.NewScanner(buf)
	for s.Next() {
	}
	return s.Err()
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
