package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/onezoom/oztree/newick"
	"github.com/onezoom/oztree/token"
)

// Request collects the reference otts named by inclusion tokens.
type Request struct {
	Included []string
	Excluded []string
}

// Gather scans fragment files for reference inclusions and returns the
// otts to extract and to exclude, each sorted and without duplicates.
// Excluded otts are pooled across every file.
func Gather(files ...string) (*Request, error) {
	inc := map[string]bool{}
	exc := map[string]bool{}
	for _, f := range files {
		d, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		for _, tok := range token.Scan(d) {
			ref, ok := tok.Inclusion.(token.Reference)
			if !ok {
				continue
			}
			inc[ref.BaseOtt] = true
			for _, x := range ref.ExcludedOtts {
				exc[x] = true
			}
		}
	}
	req := &Request{}
	for k := range inc {
		req.Included = append(req.Included, k)
	}
	for k := range exc {
		req.Excluded = append(req.Excluded, k)
	}
	slices.Sort(req.Included)
	slices.Sort(req.Excluded)
	return req, nil
}

// WriteParts extracts req from the reference tree ref and writes each
// subtree to <dir>/<key>.phy. It returns the number of files written.
func WriteParts(ref []byte, dir string, req *Request, opts ...ExtractOption) (int, error) {
	o := getOpts(opts)
	subs, err := Subtrees(newick.Trim(ref, false), req.Included, req.Excluded, opts...)
	if err != nil {
		return 0, err
	}
	o.logger.Info("extracted trees from reference", "count", len(subs))
	for _, sub := range subs {
		p := filepath.Join(dir, sub.Key+".phy")
		o.logger.Debug("writing file", "file", p)
		if err := os.WriteFile(p, []byte(sub.Text+";\n"), 0644); err != nil {
			return 0, fmt.Errorf("writing %s: %w", p, err)
		}
	}
	return len(subs), nil
}
