// Package archive dumps a finished store into a sqlite file for external
// analysis. It is a write-only export sink; nothing here is ever read back
// into a store.
package archive

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"matamazon/internal/store"
)

func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS customers(
  id INTEGER PRIMARY KEY CHECK (id >= 0),
  name TEXT NOT NULL,
  city TEXT NOT NULL,
  address TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS suppliers(
  id INTEGER PRIMARY KEY CHECK (id >= 0),
  name TEXT NOT NULL,
  city TEXT NOT NULL,
  address TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_suppliers_city ON suppliers(city);

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY CHECK (id >= 0),
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  supplier_id INTEGER NOT NULL REFERENCES suppliers(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0)
);
CREATE INDEX IF NOT EXISTS idx_products_supplier ON products(supplier_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY CHECK (id >= 0),
  customer_id INTEGER NOT NULL REFERENCES customers(id),
  product_id  INTEGER NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 0),
  total_price NUMERIC NOT NULL CHECK (total_price >= 0)
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_product  ON orders(product_id);
`
	_, err := db.Exec(schema)
	return err
}

// Save writes the complete store state in one transaction, replacing any
// previous archive contents.
func Save(db *sqlx.DB, sys *store.System) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Children first so the FK restrictions allow the wipe.
	for _, table := range []string{"orders", "products", "customers", "suppliers"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return err
		}
	}

	for _, c := range sys.Customers() {
		if _, err := tx.Exec(`INSERT INTO customers(id,name,city,address) VALUES(?,?,?,?)`,
			c.ID, c.Name, c.City, c.Address); err != nil {
			return err
		}
	}
	for _, s := range sys.Suppliers() {
		if _, err := tx.Exec(`INSERT INTO suppliers(id,name,city,address) VALUES(?,?,?,?)`,
			s.ID, s.Name, s.City, s.Address); err != nil {
			return err
		}
	}
	for _, p := range sys.Products() {
		if _, err := tx.Exec(`INSERT INTO products(id,name,price,supplier_id,quantity) VALUES(?,?,?,?,?)`,
			p.ID, p.Name, p.Price, p.SupplierID, p.Quantity); err != nil {
			return err
		}
	}
	for _, o := range sys.Orders() {
		if _, err := tx.Exec(`INSERT INTO orders(id,customer_id,product_id,quantity,total_price) VALUES(?,?,?,?,?)`,
			o.ID, o.CustomerID, o.ProductID, o.Quantity, o.TotalPrice); err != nil {
			return err
		}
	}

	return tx.Commit()
}
