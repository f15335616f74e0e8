package sqlbind_test

import (
	"errors"
	"testing"

	"github.com/sqlbind/sqlbind"
)

func TestDeleteBasic(t *testing.T) {
	sessions := sqlbind.T("sessions")
	expires := sqlbind.Col[string](sessions, "expires_at")

	res, err := sqlbind.DeleteFrom(sessions).
		Where(expires.Lt("2026-01-01")).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "DELETE FROM sessions WHERE sessions.expires_at < :expires_at_1"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
}

func TestDeleteRequiresFilter(t *testing.T) {
	sessions := sqlbind.T("sessions")

	_, err := sqlbind.DeleteFrom(sessions).Render()
	if !errors.Is(err, sqlbind.ErrNoFilter) {
		t.Errorf("Expected ErrNoFilter, got %v", err)
	}

	// Every filter absent is the same fault as no filter at all.
	expires := sqlbind.Col[string](sessions, "expires_at")
	_, err = sqlbind.DeleteFrom(sessions).Where(expires.LtIf(nil)).Render()
	if !errors.Is(err, sqlbind.ErrNoFilter) {
		t.Errorf("Expected ErrNoFilter with only absent filters, got %v", err)
	}
}

func TestDeleteAllRows(t *testing.T) {
	sessions := sqlbind.T("sessions")

	res, err := sqlbind.DeleteFrom(sessions).AllRows().Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if res.Text() != "DELETE FROM sessions" {
		t.Errorf("Expected bare DELETE, got %q", res.Text())
	}
	if len(res.ParamNames()) != 0 {
		t.Errorf("Expected empty parameter set, got %v", res.ParamNames())
	}
}

func TestDeleteReturning(t *testing.T) {
	sessions := sqlbind.T("sessions")
	id := sqlbind.Col[int](sessions, "id")

	res, err := sqlbind.DeleteFrom(sessions).
		Where(id.In(1, 2, 3)).
		Returning(id).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "DELETE FROM sessions WHERE sessions.id IN (:id_1, :id_2, :id_3) RETURNING id"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
}

func TestDeleteIsSingleUse(t *testing.T) {
	sessions := sqlbind.T("sessions")
	s := sqlbind.DeleteFrom(sessions).AllRows()

	if _, err := s.Render(); err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	if _, err := s.Render(); !errors.Is(err, sqlbind.ErrRendered) {
		t.Errorf("Expected ErrRendered, got %v", err)
	}
}
