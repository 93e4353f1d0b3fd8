package token

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/onezoom/oztree/mapping"
)

func fp(v float64) *float64 { return &v }

func TestDecode(t *testing.T) {
	tests := []struct {
		label string
		want  Token
	}{
		{
			label: "foobar_ott123@",
			want: Token{End: 14, NodeName: "foobar_ott123",
				Inclusion: Reference{BaseOtt: "123"}},
		},
		{
			label: "foobar_ott123~456-789@",
			want: Token{End: 22, NodeName: "foobar",
				Inclusion: Reference{BaseOtt: "456", ExcludedOtts: []string{"789"}}},
		},
		{
			label: "foobar_ott123~-789-111@",
			want: Token{End: 23, NodeName: "foobar_ott123",
				Inclusion: Reference{BaseOtt: "123", ExcludedOtts: []string{"789", "111"}}},
		},
		{
			label: "foobar_ott~456-789-111@",
			want: Token{End: 23, NodeName: "foobar",
				Inclusion: Reference{BaseOtt: "456", ExcludedOtts: []string{"789", "111"}}},
		},
		{
			label: "AMORPHEA@:50",
			want: Token{End: 12, NodeName: "AMORPHEA", EdgeLength: fp(50),
				Inclusion: Fragment{Name: "AMORPHEA"}},
		},
		{
			label: "'Tetrapoda_ott229562@':1.5",
			want: Token{End: 26, NodeName: "Tetrapoda_ott229562", EdgeLength: fp(1.5),
				Inclusion: Reference{BaseOtt: "229562"}},
		},
		{
			// no ott anywhere: symbolic
			label: "foo_ott@",
			want: Token{End: 8, NodeName: "foo_ott",
				Inclusion: Fragment{Name: "foo_ott"}},
		},
		{
			// unparsable length is dropped
			label: "X@:1.2.3",
			want: Token{End: 8, NodeName: "X",
				Inclusion: Fragment{Name: "X"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			got, ok := Decode(tc.label)
			if !ok {
				t.Fatalf("no token in %q", tc.label)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got)\n%s", diff)
			}
		})
	}
}

func TestDecodeNoToken(t *testing.T) {
	for _, label := range []string{"", "Homo_sapiens_ott770315", "(A,B)C:1"} {
		if _, ok := Decode(label); ok {
			t.Errorf("unexpected token in %q", label)
		}
	}
}

func TestExpand(t *testing.T) {
	ref, _ := Decode("Aves_ott81461@")
	frag, _ := Decode("BIRDS@")
	if ref.Expand() {
		t.Error("reference inclusions are not expanded")
	}
	if !frag.Expand() {
		t.Error("fragment inclusions are expanded")
	}
	if got := ref.BaseOtt(); got != "81461" {
		t.Errorf("base ott %q", got)
	}
	if got := frag.BaseOtt(); got != "" {
		t.Errorf("fragment base ott %q", got)
	}
}

func TestScan(t *testing.T) {
	in := []byte("[Cmt X@] ((A,Mammalia_ott244265@:2)B,BIRDS@)ROOT;")
	toks := Scan(in)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if got := string(in[toks[0].Start:toks[0].End]); got != "Mammalia_ott244265@:2" {
		t.Errorf("first span %q", got)
	}
	if got := string(in[toks[1].Start:toks[1].End]); got != "BIRDS@" {
		t.Errorf("second span %q", got)
	}
	if toks[0].NodeName != "Mammalia_ott244265" || toks[1].NodeName != "BIRDS" {
		t.Errorf("names %q %q", toks[0].NodeName, toks[1].NodeName)
	}
}

func TestScanNonASCII(t *testing.T) {
	in := []byte("(A,Pelecaniformes_ébis_ott12@:3,ÉCHINO@)R;")
	toks := Scan(in)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if got := string(in[toks[0].Start:toks[0].End]); got != "Pelecaniformes_ébis_ott12@:3" {
		t.Errorf("first span %q", got)
	}
	if toks[0].NodeName != "Pelecaniformes_ébis_ott12" {
		t.Errorf("name %q", toks[0].NodeName)
	}
	ref, ok := toks[0].Inclusion.(Reference)
	if !ok || ref.BaseOtt != "12" {
		t.Errorf("inclusion %#v, want a reference to 12", toks[0].Inclusion)
	}
	frag, ok := toks[1].Inclusion.(Fragment)
	if !ok || frag.Name != "ÉCHINO" {
		t.Errorf("inclusion %#v, want fragment ÉCHINO", toks[1].Inclusion)
	}
}

func TestResolve(t *testing.T) {
	refs := t.TempDir()
	frags := t.TempDir()
	if err := os.WriteFile(filepath.Join(refs, "1.phy"), []byte("(A,B)C"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(refs, "2.nwk"), []byte("(D,E)F"), 0644); err != nil {
		t.Fatal(err)
	}
	table := mapping.New(map[string]mapping.Entry{
		"BIRDS": {File: "birds.phy", EdgeLength: fp(12), Taxon: "Aves"},
		"FISH":  {File: "fish.phy", EdgeLength: fp(0)},
	})

	tests := []struct {
		label, file, length, taxon string
	}{
		{"X_ott1@", filepath.Join(refs, "1.phy"), "", ""},
		{"X_ott2@", filepath.Join(refs, "2.nwk"), "", ""},
		{"X_ott3@", filepath.Join(refs, "3.phy"), "", ""},
		{"BIRDS@", filepath.Join(frags, "birds.phy"), "12", "Aves"},
		{"FISH@", filepath.Join(frags, "fish.phy"), "", ""},
	}
	for _, tc := range tests {
		tok, _ := Decode(tc.label)
		r, err := tok.Resolve(table, frags, refs)
		if err != nil {
			t.Errorf("%s: %v", tc.label, err)
			continue
		}
		if r.File != tc.file {
			t.Errorf("%s: file %q, want %q", tc.label, r.File, tc.file)
		}
		if got := r.OverrideEdgeLength(); got != tc.length {
			t.Errorf("%s: edge length %q, want %q", tc.label, got, tc.length)
		}
		if got := r.OverrideTaxon(); got != tc.taxon {
			t.Errorf("%s: taxon %q, want %q", tc.label, got, tc.taxon)
		}
	}
}

func TestResolveUnknownName(t *testing.T) {
	tok, _ := Decode("NOPE@")
	_, err := tok.Resolve(mapping.New(nil), ".", ".")
	if !errors.Is(err, mapping.ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
	var le *mapping.LookupError
	if !errors.As(err, &le) || le.Name != "NOPE" {
		t.Errorf("unexpected error %v", err)
	}
}
