package sqlbind_test

import (
	"strings"
	"testing"

	"github.com/sqlbind/sqlbind"
)

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"users", "user_id", "Users2", "_private", "a"}
	for _, s := range valid {
		if err := sqlbind.ValidateIdentifier(s); err != nil {
			t.Errorf("Expected %q to be valid, got: %v", s, err)
		}
	}

	invalid := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"leading digit", "9users"},
		{"space", "user name"},
		{"semicolon", "users;"},
		{"quote", "users'"},
		{"dash", "user-id"},
		{"dot", "o.id"},
		{"comment", "users--"},
		{"null byte", "users\x00"},
		{"unicode quote", "users'"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if err := sqlbind.ValidateIdentifier(tt.in); err == nil {
				t.Errorf("Expected %q to be rejected", tt.in)
			}
		})
	}
}

func TestValidateExpression(t *testing.T) {
	valid := []string{
		"COUNT(*)",
		"COALESCE(amount, 0)",
		"price * quantity",
		"LOWER(email)",
		"ROWS BETWEEN 1 PRECEDING AND CURRENT ROW",
	}
	for _, s := range valid {
		if err := sqlbind.ValidateExpression(s); err != nil {
			t.Errorf("Expected %q to pass, got: %v", s, err)
		}
	}

	t.Run("blocked keywords", func(t *testing.T) {
		for _, s := range []string{
			"DROP TABLE users",
			"delete from users",
			"1 UNION exec xp_cmdshell",
			"Truncate(users)",
		} {
			if err := sqlbind.ValidateExpression(s); err == nil {
				t.Errorf("Expected %q to be rejected", s)
			}
		}
	})

	t.Run("keyword as substring is allowed", func(t *testing.T) {
		// "created_at" contains "create"; token-level matching must not
		// reject it.
		for _, s := range []string{"created_at", "updated_at", "dropped_count"} {
			if err := sqlbind.ValidateExpression(s); err != nil {
				t.Errorf("Expected %q to pass, got: %v", s, err)
			}
		}
	})

	t.Run("all violations reported", func(t *testing.T) {
		err := sqlbind.ValidateExpression("1; DROP TABLE users --")
		if err == nil {
			t.Fatal("Expected rejection")
		}
		msg := err.Error()
		if !strings.Contains(msg, "statement terminator") {
			t.Errorf("Expected terminator violation in %q", msg)
		}
		if !strings.Contains(msg, "comment marker") {
			t.Errorf("Expected comment marker violation in %q", msg)
		}
		if !strings.Contains(msg, "blocked keyword") {
			t.Errorf("Expected keyword violation in %q", msg)
		}
	})
}
