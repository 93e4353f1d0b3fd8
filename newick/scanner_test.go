package newick

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanFullRecords(t *testing.T) {
	got, err := Nodes([]byte("(A_ott123,B:1.2)C_ott789:5.5;"))
	if err != nil {
		t.Fatalf("Nodes() error = %v", err)
	}
	want := []Node{
		{Label: "A_ott123", Taxon: "A", Ott: "123", Start: 1, End: 9, NameStart: 1, Depth: 1, Leaf: true},
		{Label: "B", Taxon: "B", Length: 1.2, HasLength: true, Start: 10, End: 15, NameStart: 10, Depth: 1, Leaf: true},
		{Label: "C_ott789", Taxon: "C", Ott: "789", Length: 5.5, HasLength: true, Start: 0, End: 28, NameStart: 16, Depth: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestScanQuotedTaxa(t *testing.T) {
	got, err := Nodes([]byte("('Abc/def_ott123','qw e$r&ty':1.2)'C_*(ot)t789_ott987':5.5;"))
	if err != nil {
		t.Fatalf("Nodes() error = %v", err)
	}
	taxa := []string{"Abc/def", "qw e$r&ty", "C_*(ot)t789"}
	otts := []string{"123", "", "987"}
	for i := range taxa {
		if got[i].Taxon != taxa[i] {
			t.Errorf("node %d taxon = %q, want %q", i, got[i].Taxon, taxa[i])
		}
		if got[i].Ott != otts[i] {
			t.Errorf("node %d ott = %q, want %q", i, got[i].Ott, otts[i])
		}
	}
}

func TestScanSyntaxErrors(t *testing.T) {
	tests := []struct {
		in  string
		msg string
	}{
		{"(A,B))(C,D);", "expected a semicolon at the end of the tree"},
		{"A)))", "expected a semicolon at the end of the tree"},
		{"(A,B)C", "expected a semicolon at the end of the tree"},
		{"((A,B);", "expected ',' or ')'"},
		{"(();", "expected ',' or ')'"},
		{"(Blah,Foo:);", "'' is not a valid edge length"},
		{"(Blah,Foo:a$3);", "'a$3' is not a valid edge length"},
		{"(Blah,Foo_ott67:14z);", "'14z' is not a valid edge length"},
		{"('abc,B);", "unterminated quoted name"},
		{"((", "unexpected end of tree"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Nodes([]byte(tt.in))
			if err == nil {
				t.Fatalf("Nodes(%q) succeeded, want error", tt.in)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v is not ErrSyntax", err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *SyntaxError", err)
			}
			if se.Msg != tt.msg {
				t.Errorf("Msg = %q, want %q", se.Msg, tt.msg)
			}
		})
	}
}

func TestSyntaxErrorContext(t *testing.T) {
	in := "(" + strings.Repeat("A,", 30) + "B:x1);"
	_, err := Nodes([]byte(in))
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SyntaxError", err)
	}
	if len(se.Context) > 2*contextWidth {
		t.Errorf("context %q longer than %d", se.Context, 2*contextWidth)
	}
	if !strings.Contains(se.Context, "B:x1") {
		t.Errorf("context %q does not show the bad literal", se.Context)
	}
}

// Spans of the nodes at one depth, joined by the separators between them,
// rebuild the text of their parent.
func TestScanRoundTrip(t *testing.T) {
	inputs := []string{
		"(A_ott123,B:1.2)C_ott789:5.5;",
		"(A,(BA,((BBAA_ott123,BBAB,BBAC,BBAD)BAA,(BBBA)BBB,(BBCA:12.34,BBCB)BBC_ott456:78.9)BB)B_ott789,((CAA,CAB):5.25,CB)C,D)Root;",
		"('a b':1,'c(d)':2)'e';",
		"leaf:3;",
		"((),());",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			nodes, err := Nodes([]byte(in))
			if err != nil {
				t.Fatalf("Nodes() error = %v", err)
			}
			root := nodes[len(nodes)-1]
			if got := in[root.Start:root.End] + ";"; got != in {
				t.Errorf("root span = %q, want %q", got, in)
			}
			var pending [][]Node
			for _, n := range nodes {
				for len(pending) <= n.Depth+1 {
					pending = append(pending, nil)
				}
				if !n.Leaf {
					kids := pending[n.Depth+1]
					var b strings.Builder
					b.WriteByte('(')
					for i, k := range kids {
						if i > 0 {
							b.WriteByte(',')
						}
						b.WriteString(in[k.Start:k.End])
					}
					b.WriteByte(')')
					b.WriteString(in[n.NameStart:n.End])
					if got := b.String(); got != in[n.Start:n.End] {
						t.Errorf("rebuilt %q, want %q", got, in[n.Start:n.End])
					}
					pending[n.Depth+1] = nil
				}
				pending[n.Depth] = append(pending[n.Depth], n)
			}
		})
	}
}

func TestScannerStopsAfterError(t *testing.T) {
	s := NewScanner([]byte("(A,B:z);"))
	n := 0
	for s.Next() {
		n++
	}
	if n != 1 {
		t.Errorf("yielded %d nodes before the error, want 1", n)
	}
	if s.Err() == nil {
		t.Fatal("Err() = nil, want syntax error")
	}
	if s.Next() {
		t.Error("Next() = true after error")
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		in, want string
		semi     bool
	}{
		{"  (A,B)C;\n", "(A,B)C", true},
		{"(A,B)C;", "(A,B)C;", false},
		{"[a comment]\n (A,B)C;  ", "(A,B)C", true},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := string(Trim([]byte(tt.in), tt.semi)); got != tt.want {
			t.Errorf("Trim(%q, %v) = %q, want %q", tt.in, tt.semi, got, tt.want)
		}
	}
}

func TestSyntaxErrorLineCol(t *testing.T) {
	in := []byte("(A,\nB,\n  C:x);")
	s := NewScanner(in)
	for s.Next() {
	}
	var se *SyntaxError
	if !errors.As(s.Err(), &se) {
		t.Fatalf("expected a *SyntaxError, got %v", s.Err())
	}
	if se.Line != 2 || se.Col != 4 {
		t.Errorf("got line %d col %d, want line 2 col 4", se.Line, se.Col)
	}
}

func TestScanComments(t *testing.T) {
	src := "('BAA (bar)'[Comment 2 (Hello)],B:1[&&NHX:date=0][x])C;"
	got, err := Nodes([]byte(src))
	if err != nil {
		t.Fatalf("Nodes() error = %v", err)
	}
	want := []Node{
		{Label: "BAA (bar)", Taxon: "BAA (bar)", Comment: "Comment 2 (Hello)", Start: 1, End: 31, NameStart: 1, Depth: 1, Leaf: true},
		{Label: "B", Taxon: "B", Length: 1, HasLength: true, Comment: "&&NHX:date=0 x", Start: 32, End: 52, NameStart: 32, Depth: 1, Leaf: true},
		{Label: "C", Taxon: "C", Start: 0, End: 54, NameStart: 53, Depth: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
	}
	if _, err := Nodes([]byte("(A[open,B)C;")); err == nil || !strings.Contains(err.Error(), "unterminated comment") {
		t.Errorf("got %v, want an unterminated comment error", err)
	}
}
