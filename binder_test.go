package sqlbind_test

import (
	"testing"

	"github.com/sqlbind/sqlbind"
)

func TestBinderCounterIsGlobal(t *testing.T) {
	b := sqlbind.NewBinder()

	if got := b.Bind("PENDING", "status"); got != ":status_1" {
		t.Errorf("Expected :status_1, got %s", got)
	}
	if got := b.Bind(100, "amount"); got != ":amount_2" {
		t.Errorf("Expected :amount_2, got %s", got)
	}
	if got := b.Bind("PENDING", "status"); got != ":status_3" {
		t.Errorf("Expected :status_3 for a repeat hint, got %s", got)
	}
}

func TestBinderInsertionOrder(t *testing.T) {
	b := sqlbind.NewBinder()
	b.Bind("a", "first")
	b.Bind("b", "second")
	b.Bind("c", "third")

	names := b.Names()
	want := []string{"first_1", "second_2", "third_3"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("Name %d: expected %s, got %s", i, n, names[i])
		}
	}

	values := b.Values()
	if values["second_2"] != "b" {
		t.Errorf("Expected second_2 -> b, got %v", values["second_2"])
	}
	if b.Len() != 3 {
		t.Errorf("Expected Len 3, got %d", b.Len())
	}
}

func TestBinderHintSanitization(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want string
	}{
		{"bare column", "status", ":status_1"},
		{"expression hint", "UPPER(name)", ":UPPERname_1"},
		{"empty hint", "", ":p_1"},
		{"leading digit", "9lives", ":p9lives_1"},
		{"punctuation only", "()!", ":p_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sqlbind.NewBinder()
			if got := b.Bind("v", tt.hint); got != tt.want {
				t.Errorf("Bind hint %q: expected %s, got %s", tt.hint, tt.want, got)
			}
		})
	}
}

func TestBinderAccessorsReturnCopies(t *testing.T) {
	b := sqlbind.NewBinder()
	b.Bind(1, "id")

	names := b.Names()
	names[0] = "mutated"
	if b.Names()[0] != "id_1" {
		t.Error("Names copy mutation leaked into the Binder")
	}

	values := b.Values()
	values["id_1"] = 99
	if b.Values()["id_1"] != 1 {
		t.Error("Values copy mutation leaked into the Binder")
	}
}
