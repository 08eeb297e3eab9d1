// Package store holds the in-memory marketplace state: customers, suppliers,
// products, and orders, with the referential-integrity rules between them.
package store

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"matamazon/internal/domain"
)

// Kind discriminates the removable object kinds.
type Kind int

const (
	KindOrder Kind = iota
	KindCustomer
	KindProduct
	KindSupplier
)

func (k Kind) String() string {
	switch k {
	case KindOrder:
		return "Order"
	case KindCustomer:
		return "Customer"
	case KindProduct:
		return "Product"
	case KindSupplier:
		return "Supplier"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind matches a kind name case-insensitively.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "order":
		return KindOrder, true
	case "customer":
		return KindCustomer, true
	case "product":
		return KindProduct, true
	case "supplier":
		return KindSupplier, true
	}
	return 0, false
}

// Outcome is the result of a PlaceOrder call for conditions that are routine
// results of valid input rather than faults.
type Outcome int

const (
	OrderPlaced Outcome = iota
	NoSuchProduct
	InsufficientStock
)

func (o Outcome) Message() string {
	switch o {
	case OrderPlaced:
		return "The order has been accepted in the system"
	case NoSuchProduct:
		return "The product does not exist in the system"
	case InsufficientStock:
		return "The quantity requested for this product is greater than the quantity in stock"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// System is the authoritative in-memory collection. It owns every entity
// exclusively; accessors hand out copies. The id slices keep insertion order,
// which export and search tie-breaking depend on.
type System struct {
	customers map[int]domain.Customer
	suppliers map[int]domain.Supplier
	products  map[int]*domain.Product
	orders    map[int]domain.Order

	customerIDs []int
	supplierIDs []int
	productIDs  []int
	orderIDs    []int

	nextOrderID int
}

func New() *System {
	return &System{
		customers:   map[int]domain.Customer{},
		suppliers:   map[int]domain.Supplier{},
		products:    map[int]*domain.Product{},
		orders:      map[int]domain.Order{},
		nextOrderID: 1,
	}
}

// reserved reports whether id is taken in the shared customer/supplier
// namespace.
func (s *System) reserved(id int) bool {
	_, c := s.customers[id]
	_, sp := s.suppliers[id]
	return c || sp
}

func (s *System) RegisterCustomer(c domain.Customer) error {
	if !domain.ValidID(c.ID) {
		return &domain.InvalidIDError{Value: c.ID}
	}
	if s.reserved(c.ID) {
		return &domain.InvalidIDError{Value: c.ID}
	}
	s.customers[c.ID] = c
	s.customerIDs = append(s.customerIDs, c.ID)
	return nil
}

func (s *System) RegisterSupplier(sp domain.Supplier) error {
	if !domain.ValidID(sp.ID) {
		return &domain.InvalidIDError{Value: sp.ID}
	}
	if s.reserved(sp.ID) {
		return &domain.InvalidIDError{Value: sp.ID}
	}
	s.suppliers[sp.ID] = sp
	s.supplierIDs = append(s.supplierIDs, sp.ID)
	return nil
}

// AddOrUpdateProduct inserts a new product or updates an existing one in
// place. The supplier must already be registered; an existing product keeps
// its supplier for good.
func (s *System) AddOrUpdateProduct(p domain.Product) error {
	if _, ok := s.suppliers[p.SupplierID]; !ok {
		return &domain.InvalidIDError{Value: p.SupplierID}
	}
	existing, ok := s.products[p.ID]
	if !ok {
		cp := p
		s.products[p.ID] = &cp
		s.productIDs = append(s.productIDs, p.ID)
		return nil
	}
	if existing.SupplierID != p.SupplierID {
		return &domain.InvalidIDError{Value: p.SupplierID}
	}
	existing.Name = p.Name
	existing.Price = p.Price
	existing.Quantity = p.Quantity
	return nil
}

// PlaceOrder reserves stock for a customer. Unknown products and short stock
// are expected outcomes, not errors; only invalid input is an error. On
// success the order gets the next sequential id (starting at 1) and the
// product quantity drops by the ordered amount, atomically.
func (s *System) PlaceOrder(customerID, productID, quantity int) (Outcome, error) {
	if !domain.ValidID(customerID) {
		return 0, &domain.InvalidIDError{Value: customerID}
	}
	if !domain.ValidID(productID) {
		return 0, &domain.InvalidIDError{Value: productID}
	}
	if !domain.ValidID(quantity) {
		return 0, &domain.InvalidIDError{Value: quantity}
	}
	if _, ok := s.customers[customerID]; !ok {
		return 0, &domain.InvalidIDError{Value: customerID}
	}
	p, ok := s.products[productID]
	if !ok {
		return NoSuchProduct, nil
	}
	if quantity > p.Quantity {
		return InsufficientStock, nil
	}

	order, err := domain.NewOrder(s.nextOrderID, customerID, productID, quantity, p.Price*float64(quantity))
	if err != nil {
		return 0, err
	}
	p.Quantity -= quantity
	s.orders[order.ID] = order
	s.orderIDs = append(s.orderIDs, order.ID)
	s.nextOrderID++
	return OrderPlaced, nil
}

// RemoveObject deletes one object of the given kind. Removing an order
// restores its product's stock and returns the restored quantity; the other
// kinds refuse to go while anything still references them.
func (s *System) RemoveObject(id int, kind Kind) (int, error) {
	if !domain.ValidID(id) {
		return 0, &domain.InvalidIDError{Value: id}
	}
	switch kind {
	case KindOrder:
		return s.removeOrder(id)
	case KindCustomer:
		return 0, s.removeCustomer(id)
	case KindProduct:
		return 0, s.removeProduct(id)
	case KindSupplier:
		return 0, s.removeSupplier(id)
	}
	return 0, &domain.InvalidIDError{Value: id}
}

func (s *System) removeOrder(id int) (int, error) {
	o, ok := s.orders[id]
	if !ok {
		return 0, &domain.InvalidIDError{Value: id}
	}
	p, ok := s.products[o.ProductID]
	if !ok {
		// Orders keep their product alive, so this only happens if state
		// was corrupted elsewhere.
		return 0, &domain.InvalidIDError{Value: o.ProductID}
	}
	p.Quantity += o.Quantity
	delete(s.orders, id)
	s.orderIDs = dropID(s.orderIDs, id)
	return o.Quantity, nil
}

func (s *System) removeCustomer(id int) error {
	if _, ok := s.customers[id]; !ok {
		return &domain.InvalidIDError{Value: id}
	}
	if s.customerHasOrders(id) {
		return &domain.InvalidIDError{Value: id}
	}
	delete(s.customers, id)
	s.customerIDs = dropID(s.customerIDs, id)
	return nil
}

func (s *System) removeProduct(id int) error {
	if _, ok := s.products[id]; !ok {
		return &domain.InvalidIDError{Value: id}
	}
	if s.productHasOrders(id) {
		return &domain.InvalidIDError{Value: id}
	}
	delete(s.products, id)
	s.productIDs = dropID(s.productIDs, id)
	return nil
}

func (s *System) removeSupplier(id int) error {
	if _, ok := s.suppliers[id]; !ok {
		return &domain.InvalidIDError{Value: id}
	}
	if s.supplierHasProducts(id) || s.supplierHasOrders(id) {
		return &domain.InvalidIDError{Value: id}
	}
	delete(s.suppliers, id)
	s.supplierIDs = dropID(s.supplierIDs, id)
	return nil
}

func (s *System) customerHasOrders(id int) bool {
	for _, o := range s.orders {
		if o.CustomerID == id {
			return true
		}
	}
	return false
}

func (s *System) productHasOrders(id int) bool {
	for _, o := range s.orders {
		if o.ProductID == id {
			return true
		}
	}
	return false
}

func (s *System) supplierHasProducts(id int) bool {
	for _, p := range s.products {
		if p.SupplierID == id {
			return true
		}
	}
	return false
}

func (s *System) supplierHasOrders(id int) bool {
	for _, o := range s.orders {
		if p, ok := s.products[o.ProductID]; ok && p.SupplierID == id {
			return true
		}
	}
	return false
}

func dropID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// SearchProducts returns in-stock products whose name contains query
// (case-insensitive), optionally capped at maxPrice, cheapest first. Equal
// prices keep encounter order.
func (s *System) SearchProducts(query string, maxPrice *float64) ([]domain.Product, error) {
	if maxPrice != nil && !domain.ValidPrice(*maxPrice) {
		return nil, &domain.InvalidPriceError{Value: *maxPrice}
	}
	q := strings.ToLower(query)
	var matches []domain.Product
	for _, id := range s.productIDs {
		p := s.products[id]
		if p.Quantity == 0 {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		matches = append(matches, *p)
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price < matches[j].Price })
	return matches, nil
}

// ExportSnapshot writes every customer, then supplier, then product as one
// rendered line each, in insertion order. Orders are deliberately left out.
func (s *System) ExportSnapshot(w io.Writer) error {
	for _, id := range s.customerIDs {
		if _, err := fmt.Fprintln(w, s.customers[id].Render()); err != nil {
			return err
		}
	}
	for _, id := range s.supplierIDs {
		if _, err := fmt.Fprintln(w, s.suppliers[id].Render()); err != nil {
			return err
		}
	}
	for _, id := range s.productIDs {
		if _, err := fmt.Fprintln(w, s.products[id].Render()); err != nil {
			return err
		}
	}
	return nil
}

// OrdersByCity groups rendered orders by the city of each order's product's
// supplier. Orders whose product or supplier no longer resolves are skipped.
// Lists keep order-insertion order; the flat map is handed to an external
// JSON encoder as-is.
func (s *System) OrdersByCity() map[string][]string {
	grouped := map[string][]string{}
	for _, id := range s.orderIDs {
		o := s.orders[id]
		p, ok := s.products[o.ProductID]
		if !ok {
			continue
		}
		sup, ok := s.suppliers[p.SupplierID]
		if !ok {
			continue
		}
		grouped[sup.City] = append(grouped[sup.City], o.Render())
	}
	return grouped
}

// Accessors below hand out copies in insertion order; nothing outside the
// store may alias its maps.

func (s *System) Customers() []domain.Customer {
	out := make([]domain.Customer, 0, len(s.customerIDs))
	for _, id := range s.customerIDs {
		out = append(out, s.customers[id])
	}
	return out
}

func (s *System) Suppliers() []domain.Supplier {
	out := make([]domain.Supplier, 0, len(s.supplierIDs))
	for _, id := range s.supplierIDs {
		out = append(out, s.suppliers[id])
	}
	return out
}

func (s *System) Products() []domain.Product {
	out := make([]domain.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		out = append(out, *s.products[id])
	}
	return out
}

func (s *System) Orders() []domain.Order {
	out := make([]domain.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		out = append(out, s.orders[id])
	}
	return out
}

// Product returns a copy of one product, if present.
func (s *System) Product(id int) (domain.Product, bool) {
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}
