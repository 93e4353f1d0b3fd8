package assemble

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/onezoom/oztree/mapping"
	"github.com/onezoom/oztree/newick"
)

func fp(v float64) *float64 { return &v }

// layout writes files relative to a fresh directory and returns it.
func layout(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

var testTable = mapping.New(map[string]mapping.Entry{
	"AMORPHEA": {File: "Amorphea.PHY", EdgeLength: fp(50), Taxon: "Amorphea"},
	"PLANTS":   {File: "Plants.PHY"},
	"NONAME":   {File: "NoName.PHY", EdgeLength: fp(0)},
	"LOOP":     {File: "Loop.PHY"},
	"UNNAMED":  {File: "Unnamed.PHY", EdgeLength: fp(50)},
	"BROKEN":   {File: "Broken.PHY"},
})

func TestBuild(t *testing.T) {
	dir := layout(t, map[string]string{
		"oz/Base.PHY":     "[base tree]\n(AMORPHEA@:5,Aves_ott81461@,(X,Y)Z)Life;\n",
		"oz/Amorphea.PHY": "(Fungi,Metazoa_ott691846~-123@)AmorpheaFile:3;",
		"ot/81461.phy":    "(Gallus,Anas)Aves_ott81461:7;\n",
		"ot/691846.nwk":   "(Sponge,Cnidaria)Metazoa_ott691846;\n",
	})
	var out, logs bytes.Buffer
	a := New(testTable, WithLogger(quietLogger(&logs)))
	rep, err := a.Build(&out, filepath.Join(dir, "oz/Base.PHY"), filepath.Join(dir, "ot"))
	if err != nil {
		t.Fatal(err)
	}
	want := "((Fungi,(Sponge,Cnidaria)Metazoa_ott691846)Amorphea:50,(Gallus,Anas)Aves_ott81461:7,(X,Y)Z)Life;\n"
	if got := out.String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if diff := cmp.Diff(&Report{FilesRead: 4, TokensResolved: 3}, rep); diff != "" {
		t.Errorf("report (-want +got)\n%s", diff)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected logs:\n%s", logs.String())
	}
	if _, err := newick.Nodes(out.Bytes()[:out.Len()-1]); err != nil {
		t.Errorf("output does not parse: %v", err)
	}
}

func TestTrailerFallback(t *testing.T) {
	tests := []struct {
		name  string
		token string
		file  string
		body  string
		want  string
	}{
		{
			// mapping length and taxon win
			name: "fragment with overrides", token: "AMORPHEA@:9",
			file: "oz/Amorphea.PHY", body: "(A,B)Amorphea:12;",
			want: "((A,B)Amorphea:50)R;\n",
		},
		{
			// mapping length, name from the file
			name: "fragment with length override only", token: "UNNAMED@",
			file: "oz/Unnamed.PHY", body: "(A,B)Amorphea:12;",
			want: "((A,B)Amorphea:50)R;\n",
		},
		{
			name: "fragment uses own trailer", token: "PLANTS@:9",
			file: "oz/Plants.PHY", body: "(A,B)Plantae:12;",
			want: "((A,B)Plantae:12)R;\n",
		},
		{
			// a zero mapping length counts as absent
			name: "fragment falls back to token name", token: "NONAME@",
			file: "oz/NoName.PHY", body: "(A,B):4;",
			want: "((A,B)NONAME:4)R;\n",
		},
		{
			// the token name beats the file for references
			name: "reference prefers token name", token: "Birds_ott~81461@:9",
			file: "ot/81461.phy", body: "(A,B)Aves_ott81461:7;",
			want: "((A,B)Birds:7)R;\n",
		},
		{
			name: "reference keeps ott in name", token: "Aves_ott81461@",
			file: "ot/81461.phy", body: "(A,B)Other;",
			want: "((A,B)Aves_ott81461)R;\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := layout(t, map[string]string{
				"oz/Base.PHY": "(" + tc.token + ")R;",
				tc.file:       tc.body,
			})
			var out bytes.Buffer
			_, err := New(testTable).Build(&out, filepath.Join(dir, "oz/Base.PHY"), filepath.Join(dir, "ot"))
			if err != nil {
				t.Fatal(err)
			}
			if got := out.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildWithComments(t *testing.T) {
	dir := layout(t, map[string]string{
		"oz/Base.PHY":     "[base]\n(AMORPHEA@[inline],X[&&NHX:date=0]:1)R;",
		"oz/Amorphea.PHY": "('Fungi (f)'[Comment (Hello)],Metazoa)AmorpheaFile:3;",
	})
	var out bytes.Buffer
	_, err := New(testTable).Build(&out, filepath.Join(dir, "oz/Base.PHY"), filepath.Join(dir, "ot"))
	if err != nil {
		t.Fatal(err)
	}
	want := "(('Fungi (f)'[Comment (Hello)],Metazoa)Amorphea:50[inline],X[&&NHX:date=0]:1)R;\n"
	if got := out.String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if _, err := newick.Nodes(out.Bytes()[:out.Len()-1]); err != nil {
		t.Errorf("output does not parse: %v", err)
	}
}

func TestMissingFileKeepsToken(t *testing.T) {
	dir := layout(t, map[string]string{
		"oz/Base.PHY":   "(Gone_ott999@:2,PLANTS@)R;",
		"oz/Plants.PHY": "(A,B)Plantae;",
	})
	var out, logs bytes.Buffer
	rep, err := New(testTable, WithLogger(quietLogger(&logs))).
		Build(&out, filepath.Join(dir, "oz/Base.PHY"), filepath.Join(dir, "ot"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "(Gone_ott999@:2,(A,B)Plantae)R;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if n := strings.Count(logs.String(), "level=WARN"); n != 1 {
		t.Errorf("got %d warnings:\n%s", n, logs.String())
	}
	if len(rep.Missing) != 1 || filepath.Base(rep.Missing[0]) != "999.phy" {
		t.Errorf("missing %v", rep.Missing)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		base  string
		is    error
	}{
		{
			name: "missing base",
			base: "oz/None.PHY",
			is:   ErrMissingBase,
		},
		{
			name:  "unknown symbol",
			files: map[string]string{"oz/Base.PHY": "(WHAT@,A)R;"},
			base:  "oz/Base.PHY",
			is:    mapping.ErrLookup,
		},
		{
			name: "broken fragment",
			files: map[string]string{
				"oz/Base.PHY":   "(BROKEN@,A)R;",
				"oz/Broken.PHY": "((A,B)C;",
			},
			base: "oz/Base.PHY",
			is:   newick.ErrSyntax,
		},
		{
			name: "cycle",
			files: map[string]string{
				"oz/Base.PHY": "(LOOP@,A)R;",
				"oz/Loop.PHY": "(LOOP@,B)L;",
			},
			base: "oz/Base.PHY",
			is:   ErrCycle,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := layout(t, tc.files)
			var out bytes.Buffer
			_, err := New(testTable).Build(&out, filepath.Join(dir, tc.base), filepath.Join(dir, "ot"))
			if !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
			if out.Len() != 0 {
				t.Errorf("partial output written: %q", out.String())
			}
		})
	}
}

func TestFileTree(t *testing.T) {
	dir := layout(t, map[string]string{
		"oz/Base.PHY":     "(AMORPHEA@:5,Aves_ott81461@)Life;",
		"oz/Amorphea.PHY": "(PLANTS@,B)A;",
		"oz/Plants.PHY":   "(C,D)P;",
	})
	var out, tree bytes.Buffer
	_, err := New(testTable, WithFileTree(&tree), WithLogger(quietLogger(&bytes.Buffer{}))).
		Build(&out, filepath.Join(dir, "oz/Base.PHY"), filepath.Join(dir, "ot"))
	if err != nil {
		t.Fatal(err)
	}
	want := "-: - 0\n  AMORPHEA: 5 50\n    PLANTS: - 0\n"
	if got := tree.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFragmentRoot(t *testing.T) {
	dir := layout(t, map[string]string{
		"base/Base.PHY":    "(PLANTS@)R;",
		"frags/Plants.PHY": "(A)P;",
	})
	var out bytes.Buffer
	_, err := New(testTable, WithFragmentRoot(filepath.Join(dir, "frags"))).
		Build(&out, filepath.Join(dir, "base/Base.PHY"), dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "((A)P)R;\n" {
		t.Errorf("got %q", got)
	}
}
