package domain

import (
	"fmt"
	"math"
	"strconv"
)

// InvalidIDError reports an identifier, quantity, or reference that is
// missing, negative, duplicate, or points at nothing.
type InvalidIDError struct {
	Value any
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id: %v", e.Value)
}

// InvalidPriceError reports a negative or unparsable price/total.
type InvalidPriceError struct {
	Value any
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price: %v", e.Value)
}

// ValidID reports whether v is usable as an identifier or quantity.
func ValidID(v int) bool { return v >= 0 }

// ValidPrice reports whether v is usable as a price or order total.
func ValidPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// FormatPrice renders a price the way snapshots expect it: integral values
// keep one decimal ("5.0") so the line re-parses as a price, anything else
// uses the shortest exact form.
func FormatPrice(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type Customer struct {
	ID      int
	Name    string
	City    string
	Address string
}

func NewCustomer(id int, name, city, address string) (Customer, error) {
	if !ValidID(id) {
		return Customer{}, &InvalidIDError{Value: id}
	}
	return Customer{ID: id, Name: name, City: city, Address: address}, nil
}

// Render produces the canonical one-line form written by snapshot export and
// re-parsed on import.
func (c Customer) Render() string {
	return fmt.Sprintf("Customer(id=%d, name='%s', city='%s', address='%s')",
		c.ID, c.Name, c.City, c.Address)
}

type Supplier struct {
	ID      int
	Name    string
	City    string
	Address string
}

func NewSupplier(id int, name, city, address string) (Supplier, error) {
	if !ValidID(id) {
		return Supplier{}, &InvalidIDError{Value: id}
	}
	return Supplier{ID: id, Name: name, City: city, Address: address}, nil
}

func (s Supplier) Render() string {
	return fmt.Sprintf("Supplier(id=%d, name='%s', city='%s', address='%s')",
		s.ID, s.Name, s.City, s.Address)
}

type Product struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	SupplierID int     `json:"supplier_id"`
	Quantity   int     `json:"quantity"`
}

func NewProduct(id int, name string, price float64, supplierID, quantity int) (Product, error) {
	if !ValidID(id) {
		return Product{}, &InvalidIDError{Value: id}
	}
	if !ValidID(supplierID) {
		return Product{}, &InvalidIDError{Value: supplierID}
	}
	if !ValidID(quantity) {
		return Product{}, &InvalidIDError{Value: quantity}
	}
	if !ValidPrice(price) {
		return Product{}, &InvalidPriceError{Value: price}
	}
	return Product{ID: id, Name: name, Price: price, SupplierID: supplierID, Quantity: quantity}, nil
}

func (p Product) Render() string {
	return fmt.Sprintf("Product(id=%d, name='%s', price=%s, supplier_id=%d, quantity=%d)",
		p.ID, p.Name, FormatPrice(p.Price), p.SupplierID, p.Quantity)
}

type Order struct {
	ID         int     `json:"id"`
	CustomerID int     `json:"customer_id"`
	ProductID  int     `json:"product_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

func NewOrder(id, customerID, productID, quantity int, totalPrice float64) (Order, error) {
	if !ValidID(id) {
		return Order{}, &InvalidIDError{Value: id}
	}
	if !ValidID(customerID) {
		return Order{}, &InvalidIDError{Value: customerID}
	}
	if !ValidID(productID) {
		return Order{}, &InvalidIDError{Value: productID}
	}
	if !ValidID(quantity) {
		return Order{}, &InvalidIDError{Value: quantity}
	}
	if !ValidPrice(totalPrice) {
		return Order{}, &InvalidPriceError{Value: totalPrice}
	}
	return Order{ID: id, CustomerID: customerID, ProductID: productID, Quantity: quantity, TotalPrice: totalPrice}, nil
}

func (o Order) Render() string {
	return fmt.Sprintf("Order(id=%d, customer_id=%d, product_id=%d, quantity=%d, total_price=%s)",
		o.ID, o.CustomerID, o.ProductID, o.Quantity, FormatPrice(o.TotalPrice))
}
