// Package script replays a textual command log against a store.System, one
// command per line, strictly in order.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"matamazon/internal/domain"
	"matamazon/internal/store"
	"matamazon/internal/validate"
)

// ErrMalformed is the one generic parse failure for command lines: unknown
// command word, wrong token count, or a token of the wrong shape.
var ErrMalformed = errors.New("malformed command line")

// Runner executes a command log. Out receives the order outcome messages and
// search results the log asks for.
type Runner struct {
	Sys *store.System
	Out io.Writer
}

func New(sys *store.System, out io.Writer) *Runner {
	return &Runner{Sys: sys, Out: out}
}

// Run replays every line of src. The first malformed line or store error
// aborts the whole replay; only blank and '#' lines are skipped.
func (r *Runner) Run(src io.Reader) error {
	sc := bufio.NewScanner(src)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := r.Exec(text); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

// Exec runs a single non-blank command line.
func (r *Runner) Exec(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return ErrMalformed
	}
	switch strings.ToLower(tokens[0]) {
	case "register":
		return r.register(tokens)
	case "add", "update":
		return r.addOrUpdate(tokens)
	case "order":
		return r.order(tokens)
	case "remove":
		return r.remove(tokens)
	case "search":
		return r.search(tokens)
	}
	return ErrMalformed
}

func (r *Runner) register(tokens []string) error {
	if len(tokens) != 6 {
		return ErrMalformed
	}
	id, ok := validate.ID(tokens[2])
	if !ok {
		return ErrMalformed
	}
	name := validate.Text(tokens[3])
	city := validate.Text(tokens[4])
	address := validate.Text(tokens[5])
	switch strings.ToLower(tokens[1]) {
	case "customer":
		c, err := domain.NewCustomer(id, name, city, address)
		if err != nil {
			return err
		}
		return r.Sys.RegisterCustomer(c)
	case "supplier":
		s, err := domain.NewSupplier(id, name, city, address)
		if err != nil {
			return err
		}
		return r.Sys.RegisterSupplier(s)
	}
	return ErrMalformed
}

func (r *Runner) addOrUpdate(tokens []string) error {
	if len(tokens) != 6 {
		return ErrMalformed
	}
	id, ok := validate.ID(tokens[1])
	if !ok {
		return ErrMalformed
	}
	price, ok := validate.Price(tokens[3])
	if !ok {
		return ErrMalformed
	}
	supplierID, ok := validate.ID(tokens[4])
	if !ok {
		return ErrMalformed
	}
	quantity, ok := validate.ID(tokens[5])
	if !ok {
		return ErrMalformed
	}
	p, err := domain.NewProduct(id, validate.Text(tokens[2]), price, supplierID, quantity)
	if err != nil {
		return err
	}
	return r.Sys.AddOrUpdateProduct(p)
}

func (r *Runner) order(tokens []string) error {
	if len(tokens) != 3 && len(tokens) != 4 {
		return ErrMalformed
	}
	customerID, ok := validate.ID(tokens[1])
	if !ok {
		return ErrMalformed
	}
	productID, ok := validate.ID(tokens[2])
	if !ok {
		return ErrMalformed
	}
	quantity := 1
	if len(tokens) == 4 {
		quantity, ok = validate.ID(tokens[3])
		if !ok {
			return ErrMalformed
		}
	}
	outcome, err := r.Sys.PlaceOrder(customerID, productID, quantity)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, outcome.Message())
	return nil
}

func (r *Runner) remove(tokens []string) error {
	if len(tokens) != 3 {
		return ErrMalformed
	}
	kind, ok := store.ParseKind(tokens[1])
	if !ok {
		return ErrMalformed
	}
	id, okID := validate.ID(tokens[2])
	if !okID {
		return ErrMalformed
	}
	_, err := r.Sys.RemoveObject(id, kind)
	return err
}

func (r *Runner) search(tokens []string) error {
	if len(tokens) != 2 && len(tokens) != 3 {
		return ErrMalformed
	}
	query := validate.Text(tokens[1])
	var maxPrice *float64
	if len(tokens) == 3 {
		v, ok := validate.Price(tokens[2])
		if !ok {
			return ErrMalformed
		}
		maxPrice = &v
	}
	products, err := r.Sys.SearchProducts(query, maxPrice)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Fprintln(r.Out, p.Render())
	}
	return nil
}
