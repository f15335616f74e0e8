package sqlbind_test

import (
	"errors"
	"testing"

	"github.com/sqlbind/sqlbind"
)

func TestUpdateBasic(t *testing.T) {
	users := sqlbind.T("users")
	name := sqlbind.Col[string](users, "name")
	id := sqlbind.Col[int](users, "id")

	res, err := sqlbind.Update(users).
		Set(name, "Ada").
		Where(id.Eq(7)).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "UPDATE users SET name = :name_1 WHERE users.id = :id_2"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
}

func TestUpdateRequiresFilter(t *testing.T) {
	users := sqlbind.T("users")
	name := sqlbind.Col[string](users, "name")

	_, err := sqlbind.Update(users).Set(name, "x").Render()
	if !errors.Is(err, sqlbind.ErrNoFilter) {
		t.Errorf("Expected ErrNoFilter, got %v", err)
	}

	// Absent conditions do not count as a filter.
	_, err = sqlbind.Update(users).Set(name, "x").Where(name.EqIf(nil)).Render()
	if !errors.Is(err, sqlbind.ErrNoFilter) {
		t.Errorf("Expected ErrNoFilter when every filter is absent, got %v", err)
	}

	res, err := sqlbind.Update(users).Set(name, "x").AllRows().Render()
	if err != nil {
		t.Fatalf("AllRows render failed: %v", err)
	}
	want := "UPDATE users SET name = :name_1"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
}

func TestUpdateNullDuality(t *testing.T) {
	users := sqlbind.T("users")
	nickname := sqlbind.Col[string](users, "nickname")
	email := sqlbind.Col[string](users, "email")
	id := sqlbind.Col[int](users, "id")

	// SetNull writes NULL; SetIf with an absent value skips the column.
	res, err := sqlbind.Update(users).
		SetNull(nickname).
		SetIf(email, nil).
		Where(id.Eq(1)).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "UPDATE users SET nickname = NULL WHERE users.id = :id_1"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}

	// Set with a nil value is a construction fault, not a silent NULL.
	_, err = sqlbind.Update(users).Set(email, nil).Where(id.Eq(1)).Render()
	if !errors.Is(err, sqlbind.ErrNilValue) {
		t.Errorf("Expected ErrNilValue, got %v", err)
	}
}

func TestUpdateArithmetic(t *testing.T) {
	accounts := sqlbind.T("accounts")
	balance := sqlbind.Col[int](accounts, "balance")
	bonus := sqlbind.Col[int](accounts, "bonus")
	id := sqlbind.Col[int](accounts, "id")

	res, err := sqlbind.Update(accounts).
		SetAdd(balance, 100).
		SetExpr(bonus, balance, sqlbind.Mul, bonus).
		Where(id.Eq(1)).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "UPDATE accounts SET balance = balance + :balance_1, bonus = balance * bonus WHERE accounts.id = :id_2"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
}

func TestUpdateSetQuery(t *testing.T) {
	users := sqlbind.T("users", "u")
	orders := sqlbind.T("orders", "o")
	total := sqlbind.Col[int](users, "order_total")
	id := sqlbind.Col[int](users, "id")
	amount := sqlbind.Col[int](orders, "amount")
	customerID := sqlbind.Col[int](orders, "customer_id")

	sub := sqlbind.Select(amount).From(orders).Where(customerID.EqCol(id))

	res, err := sqlbind.Update(users).
		SetQuery(total, sub).
		Where(id.Eq(3)).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "UPDATE users u SET order_total = (SELECT o.amount FROM orders o WHERE o.customer_id = u.id) WHERE u.id = :id_1"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
}

func TestUpdateSetCase(t *testing.T) {
	orders := sqlbind.T("orders")
	tier := sqlbind.Col[string](orders, "tier")
	amount := sqlbind.Col[int](orders, "amount")
	id := sqlbind.Col[int](orders, "id")

	ce := sqlbind.Case().
		When(amount.Gt(1000), "gold").
		Else("standard")

	res, err := sqlbind.Update(orders).
		SetCase(tier, ce).
		Where(id.Eq(5)).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "UPDATE orders SET tier = CASE WHEN orders.amount > :amount_1 THEN :case_2 ELSE :case_3 END WHERE orders.id = :id_4"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
}

func TestUpdateTemplate(t *testing.T) {
	users := sqlbind.T("users")
	name := sqlbind.Col[string](users, "name")
	id := sqlbind.Col[int](users, "id")

	res, err := sqlbind.Update(users).
		Set(name, "placeholder").
		Where(id.Eq(0)).
		Template().
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "UPDATE users SET name = :name WHERE users.id = :id"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
	if len(res.ParamNames()) != 0 {
		t.Errorf("Template Result must carry no values, got %v", res.ParamNames())
	}
}

func TestUpdateReturning(t *testing.T) {
	users := sqlbind.T("users")
	name := sqlbind.Col[string](users, "name")
	id := sqlbind.Col[int](users, "id")

	res, err := sqlbind.Update(users).
		Set(name, "Ada").
		Where(id.Eq(1)).
		Returning(id, name).
		Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "UPDATE users SET name = :name_1 WHERE users.id = :id_2 RETURNING id, name"
	if res.Text() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, res.Text())
	}
}
