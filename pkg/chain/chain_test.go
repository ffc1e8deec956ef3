package chain

import (
	"reflect"
	"testing"
)

func TestParseServer(t *testing.T) {
	tests := []struct {
		input     string
		wantName  string
		wantLogin string
		wantErr   bool
	}{
		{"SQL02", "SQL02", "", false},
		{"SQL02:sa", "SQL02", "sa", false},
		{"  SQL02 : sa ", "SQL02", "sa", false},
		{"SQL02:", "SQL02", "", false},
		{"", "", "", true},
		{"   ", "", "", true},
		{":sa", "", "", true},
	}

	for _, tt := range tests {
		srv, err := ParseServer(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseServer(%q): expected error, got %+v", tt.input, srv)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseServer(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if srv.Name != tt.wantName || srv.ImpersonationLogin != tt.wantLogin {
			t.Errorf("ParseServer(%q) = {%q, %q}, want {%q, %q}",
				tt.input, srv.Name, srv.ImpersonationLogin, tt.wantName, tt.wantLogin)
		}
	}
}

func TestParseChain(t *testing.T) {
	c, err := Parse("SQL02:webuser,SQL03")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if c.Len() != 2 {
		t.Fatalf("expected 2 hops, got %d", c.Len())
	}

	want := []string{"SQL02", "SQL03"}
	if !reflect.DeepEqual(c.Names(), want) {
		t.Errorf("Names() = %v, want %v", c.Names(), want)
	}

	if c.Servers()[0].ImpersonationLogin != "webuser" {
		t.Errorf("expected first hop login webuser, got %q", c.Servers()[0].ImpersonationLogin)
	}

	if c.Spec() != "SQL02:webuser,SQL03" {
		t.Errorf("Spec() = %q, expected round trip", c.Spec())
	}
}

func TestParseChainEmpty(t *testing.T) {
	c, err := Parse("   ")
	if err != nil {
		t.Fatalf("Parse of blank spec failed: %v", err)
	}
	if !c.IsEmpty() {
		t.Errorf("expected empty chain")
	}
}

func TestParseChainInvalidToken(t *testing.T) {
	if _, err := Parse("SQL02,,SQL03"); err == nil {
		t.Errorf("expected error for empty token in chain spec")
	}
}

func TestAppendValidation(t *testing.T) {
	c := New()

	if err := c.Append("", "sa"); err == nil {
		t.Errorf("expected error appending empty server name")
	}
	if !c.IsEmpty() {
		t.Errorf("failed append must not mutate the chain")
	}

	if err := c.Append("SQL02", ""); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 hop after append, got %d", c.Len())
	}
}

func TestCloneIndependence(t *testing.T) {
	original, err := Parse("SQL02:sa,SQL03")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	clone := original.Clone()
	if !reflect.DeepEqual(original.Servers(), clone.Servers()) {
		t.Fatalf("clone differs from original: %v vs %v", original.Servers(), clone.Servers())
	}

	if err := clone.Append("SQL04", "svc"); err != nil {
		t.Fatalf("Append on clone failed: %v", err)
	}
	clone.Reset()

	if original.Len() != 2 {
		t.Errorf("mutating the clone changed the original: %v", original.Servers())
	}
}

func TestChainString(t *testing.T) {
	c := New()
	if c.String() != "(direct)" {
		t.Errorf("empty chain String() = %q", c.String())
	}

	c, _ = Parse("SQL02,SQL03:sa")
	if c.String() != "SQL02 -> SQL03" {
		t.Errorf("String() = %q, want %q", c.String(), "SQL02 -> SQL03")
	}
}

func TestLast(t *testing.T) {
	c := New()
	if _, ok := c.Last(); ok {
		t.Errorf("Last() on empty chain should report false")
	}

	c, _ = Parse("SQL02,SQL03")
	last, ok := c.Last()
	if !ok || last.Name != "SQL03" {
		t.Errorf("Last() = %+v, %v; want SQL03", last, ok)
	}
}
