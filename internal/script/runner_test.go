package script_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"matamazon/internal/domain"
	"matamazon/internal/script"
	"matamazon/internal/store"
)

func run(t *testing.T, log string) (*store.System, string, error) {
	t.Helper()
	sys := store.New()
	var out bytes.Buffer
	err := script.New(sys, &out).Run(strings.NewReader(log))
	return sys, out.String(), err
}

func TestReplayScenario(t *testing.T) {
	log := `
# seed the marketplace
register supplier 1 Acme_Radios CityA AddrA
add 10 Tube_Radio 5.0 1 3
register customer 2 Ada CityB AddrB

order 2 10 2
order 2 10 5
remove Order 1
`
	sys, out, err := run(t, log)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 outcome lines, got %q", lines)
	}
	if lines[0] != store.OrderPlaced.Message() || lines[1] != store.InsufficientStock.Message() {
		t.Fatalf("bad outcome output: %q", lines)
	}

	p, ok := sys.Product(10)
	if !ok || p.Quantity != 3 {
		t.Fatalf("stock after remove: want 3, got %+v", p)
	}
	if p.Name != "Tube Radio" {
		t.Fatalf("token decoding failed: %q", p.Name)
	}
	if len(sys.Orders()) != 0 {
		t.Fatal("order should be removed")
	}
}

func TestFreeTextDecoding(t *testing.T) {
	sys, _, err := run(t, "register customer 3 Grace_B. New/York 4_Main/St")
	if err != nil {
		t.Fatal(err)
	}
	c := sys.Customers()[0]
	if c.Name != "Grace B." || c.City != "New York" || c.Address != "4 Main St" {
		t.Fatalf("bad decode: %+v", c)
	}
}

func TestCaseInsensitiveCommands(t *testing.T) {
	_, _, err := run(t, "REGISTER Supplier 1 S A B\nAdd 10 P 1.0 1 1")
	if err != nil {
		t.Fatal(err)
	}
}

func TestUpdateAliasesAdd(t *testing.T) {
	sys, _, err := run(t, "register supplier 1 S A B\nadd 10 P 1.0 1 1\nupdate 10 P2 2.5 1 7")
	if err != nil {
		t.Fatal(err)
	}
	p, _ := sys.Product(10)
	if p.Name != "P2" || p.Price != 2.5 || p.Quantity != 7 {
		t.Fatalf("update did not apply: %+v", p)
	}
}

func TestSearchCommandOutput(t *testing.T) {
	log := `register supplier 1 S A B
add 10 Red_Phone 30.0 1 2
add 11 phone_case 10.0 1 4
search phone 10
`
	_, out, err := run(t, log)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimRight(out, "\n") != "Product(id=11, name='phone case', price=10.0, supplier_id=1, quantity=4)" {
		t.Fatalf("bad search output: %q", out)
	}
}

func TestMalformedLinesAbort(t *testing.T) {
	for _, log := range []string{
		"frobnicate 1 2",                // unknown command
		"register customer 1 A B",       // too few tokens
		"register customer 1 A B C D",   // too many tokens
		"register vendor 1 A B C",       // bad entity kind
		"add 10 P one 1 1",              // price shape
		"add -10 P 1.0 1 1",             // signed id token
		"order 2",                       // too few tokens
		"order 2 10 true",               // boolean-shaped quantity
		"remove Gadget 1",               // unknown kind
		"remove Order",                  // too few tokens
		"search",                        // missing query
		"search phone ten",              // bad max price
	} {
		_, _, err := run(t, log)
		if !errors.Is(err, script.ErrMalformed) {
			t.Fatalf("%q: want ErrMalformed, got %v", log, err)
		}
	}
}

func TestDomainErrorsAbortWithLine(t *testing.T) {
	log := "register supplier 1 S A B\nregister customer 1 C A B\nregister customer 2 C A B"
	sys, _, err := run(t, log)
	var ie *domain.InvalidIDError
	if !errors.As(err, &ie) {
		t.Fatalf("want InvalidIDError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 2:") {
		t.Fatalf("error should carry the line number: %v", err)
	}
	// the run stopped before line 3
	if len(sys.Customers()) != 0 {
		t.Fatalf("replay must abort on first error: %+v", sys.Customers())
	}
}

func TestCommentsAndBlanksSkipped(t *testing.T) {
	sys, _, err := run(t, "\n# comment\n   \nregister supplier 1 S A B\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(sys.Suppliers()) != 1 {
		t.Fatal("supplier line should have run")
	}
}
