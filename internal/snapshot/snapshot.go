// Package snapshot reads and applies the textual system dump: one
// constructor-shaped line per record, Customer/Supplier/Product only.
package snapshot

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"matamazon/internal/domain"
	"matamazon/internal/store"
)

// The loader never evaluates anything: each line must match one of these
// fixed shapes exactly, positional fields included.
var (
	reCustomer = regexp.MustCompile(`^Customer\(id=([0-9]+), name='(.*?)', city='(.*?)', address='(.*?)'\)$`)
	reSupplier = regexp.MustCompile(`^Supplier\(id=([0-9]+), name='(.*?)', city='(.*?)', address='(.*?)'\)$`)
	reProduct  = regexp.MustCompile(`^Product\(id=([0-9]+), name='(.*?)', price=([0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?), supplier_id=([0-9]+), quantity=([0-9]+)\)$`)
)

// Load reconstructs a store from a snapshot. Lines that fail to parse or
// fail record validation are dropped without error; that skip policy is
// deliberately looser than command-log replay, which aborts on anything.
// Customers are applied first, then suppliers, then products, so a product
// line may precede its supplier's line in the file. Application failures
// (duplicate ids, products pointing at unknown suppliers) and read errors do
// abort.
func Load(src io.Reader) (*store.System, error) {
	var (
		customers []domain.Customer
		suppliers []domain.Supplier
		products  []domain.Product
	)

	sc := bufio.NewScanner(src)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if m := reCustomer.FindStringSubmatch(line); m != nil {
			if c, ok := parseCustomer(m); ok {
				customers = append(customers, c)
			}
			continue
		}
		if m := reSupplier.FindStringSubmatch(line); m != nil {
			if s, ok := parseSupplier(m); ok {
				suppliers = append(suppliers, s)
			}
			continue
		}
		if m := reProduct.FindStringSubmatch(line); m != nil {
			if p, ok := parseProduct(m); ok {
				products = append(products, p)
			}
			continue
		}
		// unrecognized vocabulary or shape: skip
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	sys := store.New()
	for _, c := range customers {
		if err := sys.RegisterCustomer(c); err != nil {
			return nil, err
		}
	}
	for _, s := range suppliers {
		if err := sys.RegisterSupplier(s); err != nil {
			return nil, err
		}
	}
	for _, p := range products {
		if err := sys.AddOrUpdateProduct(p); err != nil {
			return nil, err
		}
	}
	return sys, nil
}

func parseCustomer(m []string) (domain.Customer, bool) {
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Customer{}, false
	}
	c, err := domain.NewCustomer(id, m[2], m[3], m[4])
	return c, err == nil
}

func parseSupplier(m []string) (domain.Supplier, bool) {
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Supplier{}, false
	}
	s, err := domain.NewSupplier(id, m[2], m[3], m[4])
	return s, err == nil
}

func parseProduct(m []string) (domain.Product, bool) {
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Product{}, false
	}
	price, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return domain.Product{}, false
	}
	supplierID, err := strconv.Atoi(m[4])
	if err != nil {
		return domain.Product{}, false
	}
	quantity, err := strconv.Atoi(m[5])
	if err != nil {
		return domain.Product{}, false
	}
	p, err := domain.NewProduct(id, m[2], price, supplierID, quantity)
	return p, err == nil
}
