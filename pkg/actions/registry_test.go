package actions

import (
	"context"
	"testing"
)

func TestRegistryContainsCatalog(t *testing.T) {
	for _, name := range []string{
		"whoami", "info", "databases", "tables", "rows", "search",
		"links", "rpc", "impersonate", "sessions", "xpcmd", "config",
		"chain", "export",
	} {
		if _, ok := New(name); !ok {
			t.Errorf("action %q not registered", name)
		}
		info, ok := Describe(name)
		if !ok || info.Description == "" || info.Usage == "" {
			t.Errorf("action %q missing metadata: %+v", name, info)
		}
	}
}

func TestNewIsCaseInsensitive(t *testing.T) {
	if _, ok := New("WhoAmI"); !ok {
		t.Errorf("lookup should be case-insensitive")
	}
}

func TestListIsSorted(t *testing.T) {
	infos := List()
	if len(infos) < 10 {
		t.Fatalf("expected the full catalog, got %d actions", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name >= infos[i].Name {
			t.Errorf("List not sorted: %q before %q", infos[i-1].Name, infos[i].Name)
		}
	}
}

func TestNewReturnsFreshInstances(t *testing.T) {
	a1, _ := New("rpc")
	a2, _ := New("rpc")
	if a1 == a2 {
		t.Errorf("expected distinct instances per invocation")
	}

	// Validation state on one instance must not leak into the other.
	if err := a1.Validate([]string{"add", "SQL03"}); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if err := a2.Validate([]string{}); err == nil {
		t.Errorf("expected arity error on the fresh instance")
	}
}

func TestRpcValidate(t *testing.T) {
	a := &rpcAction{}

	if err := a.Validate([]string{"add", "SQL03"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !a.enable || a.server != "SQL03" {
		t.Errorf("parsed state = %+v", a)
	}

	if err := a.Validate([]string{"enable", "SQL03"}); err == nil {
		t.Errorf("expected error for invalid mode")
	}
	if err := a.Validate([]string{"add"}); err == nil {
		t.Errorf("expected error for missing server")
	}
}

func TestRowsValidate(t *testing.T) {
	a := &rowsAction{}

	if err := a.Validate([]string{"dbo.users"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.limit != 100 {
		t.Errorf("default limit = %d, want 100", a.limit)
	}

	if err := a.Validate([]string{"dbo.users", "25"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.limit != 25 {
		t.Errorf("limit = %d, want 25", a.limit)
	}

	if err := a.Validate([]string{"dbo.users", "lots"}); err == nil {
		t.Errorf("expected error for non-numeric limit")
	}
	if err := a.Validate([]string{"dbo.users", "0"}); err == nil {
		t.Errorf("expected error for non-positive limit")
	}
}

func TestChainValidate(t *testing.T) {
	a := &chainAction{}

	if err := a.Validate(nil); err != nil || a.mode != "show" {
		t.Errorf("bare !chain should default to show, got %q (%v)", a.mode, err)
	}

	if err := a.Validate([]string{"add", "SQL03:svc"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.server.Name != "SQL03" || a.server.ImpersonationLogin != "svc" {
		t.Errorf("parsed server = %+v", a.server)
	}

	if err := a.Validate([]string{"add", ":svc"}); err == nil {
		t.Errorf("expected error for empty server name")
	}
	if err := a.Validate([]string{"drop"}); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestXpcmdValidateJoinsArguments(t *testing.T) {
	a := &xpcmdAction{}
	if err := a.Validate([]string{"whoami", "/all"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.command != "whoami /all" {
		t.Errorf("command = %q", a.command)
	}
}

func TestEscapeHelpers(t *testing.T) {
	if got := escapeLiteral("it's"); got != "it''s" {
		t.Errorf("escapeLiteral = %q", got)
	}
	if got := escapeIdentifier("we]ird"); got != "we]]ird" {
		t.Errorf("escapeIdentifier = %q", got)
	}
}

func TestRunUnknownAction(t *testing.T) {
	env := &Env{}
	if err := Run(context.Background(), env, "nosuch", nil); err == nil {
		t.Errorf("expected error for unknown action")
	}
}
