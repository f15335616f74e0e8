package sqlbind_test

import (
	"testing"

	"github.com/sqlbind/sqlbind"
)

func TestRegistryRenderMintsFreshStatements(t *testing.T) {
	reg := sqlbind.NewRegistry()
	users := sqlbind.T("users", "u")
	active := sqlbind.Col[bool](users, "active")

	reg.MustRegister("active_users", func() sqlbind.Statement {
		return sqlbind.Select().From(users).Where(active.Eq(true))
	})

	// Builders are single use; the registry must survive repeated renders
	// because every call gets a fresh one from the factory.
	for i := 0; i < 3; i++ {
		res, err := reg.Render("active_users")
		if err != nil {
			t.Fatalf("Render %d failed: %v", i, err)
		}
		want := "SELECT * FROM users u WHERE u.active = :active_1"
		if res.Text() != want {
			t.Errorf("Render %d: expected %q, got %q", i, want, res.Text())
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := sqlbind.NewRegistry()
	factory := func() sqlbind.Statement {
		return sqlbind.Select().From(sqlbind.T("users"))
	}

	if err := reg.Register("all_users", factory); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	if err := reg.Register("all_users", factory); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
}

func TestRegistryValidatesNames(t *testing.T) {
	reg := sqlbind.NewRegistry()
	factory := func() sqlbind.Statement {
		return sqlbind.Select().From(sqlbind.T("users"))
	}

	if err := reg.Register("bad name;", factory); err == nil {
		t.Error("Expected invalid name to be rejected")
	}
	if err := reg.Register("ok", nil); err == nil {
		t.Error("Expected nil factory to be rejected")
	}
}

func TestRegistryUnknownName(t *testing.T) {
	reg := sqlbind.NewRegistry()
	if _, err := reg.Render("missing"); err == nil {
		t.Error("Expected unknown statement name to fail")
	}
}
