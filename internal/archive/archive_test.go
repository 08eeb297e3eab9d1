package archive_test

import (
	"testing"

	"matamazon/internal/archive"
	"matamazon/internal/domain"
	"matamazon/internal/store"
)

func seeded(t *testing.T) *store.System {
	t.Helper()
	sys := store.New()
	sup, _ := domain.NewSupplier(1, "Acme", "CityA", "AddrA")
	if err := sys.RegisterSupplier(sup); err != nil {
		t.Fatal(err)
	}
	p, _ := domain.NewProduct(10, "Tube Radio", 5.0, 1, 3)
	if err := sys.AddOrUpdateProduct(p); err != nil {
		t.Fatal(err)
	}
	c, _ := domain.NewCustomer(2, "Ada", "CityB", "AddrB")
	if err := sys.RegisterCustomer(c); err != nil {
		t.Fatal(err)
	}
	if outcome, err := sys.PlaceOrder(2, 10, 2); err != nil || outcome != store.OrderPlaced {
		t.Fatalf("outcome=%v err=%v", outcome, err)
	}
	return sys
}

func TestSaveWritesAllTables(t *testing.T) {
	db, err := archive.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	sys := seeded(t)
	if err := archive.Save(db, sys); err != nil {
		t.Fatal(err)
	}

	for table, want := range map[string]int{
		"customers": 1, "suppliers": 1, "products": 1, "orders": 1,
	} {
		var n int
		if err := db.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Fatalf("%s: want %d rows, got %d", table, want, n)
		}
	}

	var total float64
	if err := db.Get(&total, `SELECT total_price FROM orders WHERE id=1`); err != nil {
		t.Fatal(err)
	}
	if total != 10.0 {
		t.Fatalf("want total 10.0, got %v", total)
	}
	var qty int
	if err := db.Get(&qty, `SELECT quantity FROM products WHERE id=10`); err != nil {
		t.Fatal(err)
	}
	if qty != 1 {
		t.Fatalf("archived stock should reflect the order, got %d", qty)
	}
}

func TestSaveReplacesPreviousContents(t *testing.T) {
	db, err := archive.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	sys := seeded(t)
	if err := archive.Save(db, sys); err != nil {
		t.Fatal(err)
	}
	// remove the order and save again; the archive must track, not accumulate
	if _, err := sys.RemoveObject(1, store.KindOrder); err != nil {
		t.Fatal(err)
	}
	if err := archive.Save(db, sys); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("want empty orders table, got %d rows", n)
	}
	var qty int
	if err := db.Get(&qty, `SELECT quantity FROM products WHERE id=10`); err != nil {
		t.Fatal(err)
	}
	if qty != 3 {
		t.Fatalf("want restored stock 3, got %d", qty)
	}
}
