package token

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/onezoom/oztree/mapping"
)

var (
	// 'name@':length, quotes and length optional
	// Letters and digits are matched beyond ASCII, as names are UTF-8.
	tokenRe = regexp.MustCompile(`'?([\p{L}\p{N}_\-~]+)@'?(?::([\d.]+))?`)
	// name_ott<base>~<ott>-<excluded>-<excluded>
	detailRe = regexp.MustCompile(`^([\p{L}\p{N}_]+)_ott(\d*)~?([-\d]*)$`)
)

// Inclusion is either a Reference or a Fragment.
type Inclusion interface {
	inclusion()
}

// Reference includes a pre-extracted subtree of the reference taxonomy.
// Its content is already complete and is not scanned for tokens.
type Reference struct {
	BaseOtt      string
	ExcludedOtts []string
}

// Fragment includes a hand-curated file found through the mapping table.
// Its content may hold further tokens.
type Fragment struct {
	Name string
	// set by Resolve
	Entry *mapping.Entry
}

func (Reference) inclusion() {}
func (Fragment) inclusion()  {}

// Token is one decoded inclusion token.
type Token struct {
	// Start and End delimit the whole token in the scanned text,
	// including quotes and the trailing edge length.
	Start int
	End   int

	// NodeName is the name the node carries in the including tree.
	NodeName string
	// EdgeLength is the length given after '@', if any.
	EdgeLength *float64

	Inclusion Inclusion

	// File is set by Resolve.
	File string
}

// Expand reports whether the included content is scanned for further
// tokens.
func (t *Token) Expand() bool {
	_, ok := t.Inclusion.(Fragment)
	return ok
}

// BaseOtt returns the ott of a reference inclusion, or "".
func (t *Token) BaseOtt() string {
	if r, ok := t.Inclusion.(Reference); ok {
		return r.BaseOtt
	}
	return ""
}

// Decode decodes the first token found in label.
func Decode(label string) (Token, bool) {
	m := tokenRe.FindStringSubmatchIndex(label)
	if m == nil {
		return Token{}, false
	}
	return decodeMatch(label, m), true
}

// Scan returns every token in text, in order. A leading [comment] block
// is skipped.
func Scan(text []byte) []Token {
	s := string(text)
	off := 0
	if trimmed := strings.TrimLeft(s, " \t\r\n"); strings.HasPrefix(trimmed, "[") {
		if j := strings.IndexByte(s, ']'); j >= 0 {
			off = j + 1
		}
	}
	var res []Token
	for _, m := range tokenRe.FindAllStringSubmatchIndex(s[off:], -1) {
		for i := range m {
			if m[i] >= 0 {
				m[i] += off
			}
		}
		res = append(res, decodeMatch(s, m))
	}
	return res
}

func decodeMatch(s string, m []int) Token {
	tok := Token{
		Start:    m[0],
		End:      m[1],
		NodeName: s[m[2]:m[3]],
	}
	if m[4] >= 0 {
		if v, err := strconv.ParseFloat(s[m[4]:m[5]], 64); err == nil {
			tok.EdgeLength = &v
		}
	}
	tok.Inclusion = Fragment{Name: tok.NodeName}

	d := detailRe.FindStringSubmatch(tok.NodeName)
	if d == nil {
		return tok
	}
	parts := strings.Split(d[3], "-")
	first := parts[0]
	base := first
	if base == "" {
		base = d[2]
	}
	if base == "" {
		// _ott with no number anywhere
		return tok
	}
	var excluded []string
	for _, p := range parts[1:] {
		if p != "" {
			excluded = append(excluded, p)
		}
	}
	tok.NodeName = d[1]
	if first == "" {
		tok.NodeName += "_ott" + base
	}
	tok.Inclusion = Reference{BaseOtt: base, ExcludedOtts: excluded}
	return tok
}
