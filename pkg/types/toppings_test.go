package types

import "testing"

func TestToppingPriceTreatsMissingAsFree(t *testing.T) {
	free := Topping{ID: 1, Name: "Lechuga"}
	if free.Price() != 0 {
		t.Fatalf("expected free topping, got %d", free.Price())
	}

	price := 2000
	paid := Topping{ID: 2, Name: "Tocineta", PriceCents: &price}
	if paid.Price() != 2000 {
		t.Fatalf("expected 2000, got %d", paid.Price())
	}
}

func TestToppingsScanAndLookup(t *testing.T) {
	var decoded Toppings
	raw := `[{"id":4,"name":"Queso","price_cents":1500},{"id":5,"name":"Cebolla","removable":true}]`
	if err := decoded.Scan([]byte(raw)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 toppings, got %d", len(decoded))
	}

	queso, ok := decoded.ByID(4)
	if !ok || queso.Price() != 1500 {
		t.Fatalf("lookup failed: %+v ok=%v", queso, ok)
	}
	if _, ok := decoded.ByID(99); ok {
		t.Fatal("unknown id should not resolve")
	}

	cebolla, _ := decoded.ByID(5)
	if !cebolla.Removable {
		t.Fatal("expected removable base topping")
	}
}

func TestToppingsNilValueSerializesAsEmptyArray(t *testing.T) {
	var none Toppings
	val, err := none.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if string(val.([]byte)) != "[]" {
		t.Fatalf("expected empty array, got %s", val)
	}
}
