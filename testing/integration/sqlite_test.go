package integration

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/sqlbind/sqlbind"
)

// newSQLiteDB opens an in-memory SQLite database with the orders schema.
// SQLite needs no container, so these tests run in short mode too.
func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open SQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE orders (
		id INTEGER PRIMARY KEY,
		status TEXT NOT NULL,
		amount INTEGER NOT NULL
	)`)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	_, err = db.Exec(`INSERT INTO orders (status, amount) VALUES
		('PENDING', 50), ('PENDING', 150), ('SHIPPED', 300)`)
	if err != nil {
		t.Fatalf("Failed to seed data: %v", err)
	}
	return db
}

func TestSQLite_SelectRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)

	orders := sqlbind.T("orders", "o")
	status := sqlbind.Col[string](orders, "status")
	amount := sqlbind.Col[int](orders, "amount")

	res, err := sqlbind.Select(amount).
		From(orders).
		Where(status.Eq("PENDING"), amount.Ge(100)).
		Dialect(sqlbind.SQLite).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	text, args := res.Positional(sqlbind.Question)
	rows, err := db.Query(text, args...)
	if err != nil {
		t.Fatalf("Query failed: %v\nSQL: %s", err, text)
	}
	defer rows.Close()

	var amounts []int
	for rows.Next() {
		var a int
		if err := rows.Scan(&a); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Rows error: %v", err)
	}
	if len(amounts) != 1 || amounts[0] != 150 {
		t.Errorf("Expected [150], got %v", amounts)
	}
}

func TestSQLite_UpdateAndDelete(t *testing.T) {
	db := newSQLiteDB(t)

	orders := sqlbind.T("orders")
	status := sqlbind.Col[string](orders, "status")
	amount := sqlbind.Col[int](orders, "amount")

	upd, err := sqlbind.Update(orders).
		Set(status, "CANCELLED").
		Where(amount.Lt(100)).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	text, args := upd.Positional(sqlbind.Question)
	if _, err := db.Exec(text, args...); err != nil {
		t.Fatalf("Update failed: %v\nSQL: %s", err, text)
	}

	del, err := sqlbind.DeleteFrom(orders).Where(status.Eq("CANCELLED")).Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	text, args = del.Positional(sqlbind.Question)
	res, err := db.Exec(text, args...)
	if err != nil {
		t.Fatalf("Delete failed: %v\nSQL: %s", err, text)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		t.Fatalf("RowsAffected failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 row deleted, got %d", affected)
	}
}

func TestSQLite_PaginationAndSetOps(t *testing.T) {
	db := newSQLiteDB(t)

	orders := sqlbind.T("orders", "o")
	id := sqlbind.Col[int](orders, "id")
	status := sqlbind.Col[string](orders, "status")

	// Set-op members get their own table instance so column handles qualify
	// correctly within each member.
	o2 := orders.As("o2")
	pending := sqlbind.Select(id).From(orders).Where(status.Eq("PENDING"))
	shipped := sqlbind.Select(id.At(o2)).From(o2).Where(status.At(o2).Eq("SHIPPED"))

	res, err := pending.
		UnionAll(shipped).
		Dialect(sqlbind.SQLite).
		Limit(2).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	text, args := res.Positional(sqlbind.Question)
	rows, err := db.Query(text, args...)
	if err != nil {
		t.Fatalf("Query failed: %v\nSQL: %s", err, text)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Rows error: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rows with LIMIT 2, got %d", count)
	}
}
