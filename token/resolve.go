package token

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/onezoom/oztree/mapping"
)

// Resolve binds t to the file holding its content. Reference inclusions
// resolve to <referenceRoot>/<ott>.phy, falling back to .nwk when only
// that exists. Fragment inclusions are looked up in table and resolve
// relative to fragmentRoot; a lookup failure is returned as an error
// wrapping mapping.ErrLookup.
func (t Token) Resolve(table *mapping.Table, fragmentRoot, referenceRoot string) (Token, error) {
	switch inc := t.Inclusion.(type) {
	case Reference:
		t.File = referenceFile(referenceRoot, inc.BaseOtt)
	case Fragment:
		e, err := table.Lookup(inc.Name)
		if err != nil {
			return t, err
		}
		inc.Entry = &e
		t.Inclusion = inc
		t.File = filepath.Join(fragmentRoot, e.File)
	default:
		return t, fmt.Errorf("%w: %q", ErrUnresolved, t.NodeName)
	}
	return t, nil
}

func referenceFile(root, ott string) string {
	phy := filepath.Join(root, ott+".phy")
	if _, err := os.Stat(phy); err == nil {
		return phy
	}
	nwk := filepath.Join(root, ott+".nwk")
	if _, err := os.Stat(nwk); err == nil {
		return nwk
	}
	return phy
}

// OverrideEdgeLength returns the mapping edge length of a resolved
// fragment, or "" if it has none.
func (t *Token) OverrideEdgeLength() string {
	if f, ok := t.Inclusion.(Fragment); ok && f.Entry != nil {
		return f.Entry.Length()
	}
	return ""
}

// OverrideTaxon returns the mapping taxon of a resolved fragment, or "".
func (t *Token) OverrideTaxon() string {
	if f, ok := t.Inclusion.(Fragment); ok && f.Entry != nil {
		return f.Entry.Taxon
	}
	return ""
}
