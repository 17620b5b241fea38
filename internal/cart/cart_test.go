package cart

import (
	"testing"

	"github.com/unieats/unieats-backend/internal/menu"
	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
)

func testDish(t *testing.T, id, restaurantID, priceCents int) menu.Item {
	t.Helper()
	item, err := menu.FromModel(models.Dish{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         "Dish",
		PriceCents:   priceCents,
		Kind:         enums.CustomizationSimple,
		Available:    true,
	})
	if err != nil {
		t.Fatalf("building test dish: %v", err)
	}
	return item
}

func candidateFor(t *testing.T, restaurantID, dishID, unitPrice, qty int) *Candidate {
	t.Helper()
	return &Candidate{
		RestaurantID:   restaurantID,
		RestaurantName: "Cafeteria Central",
		University:     "Mondragon Unibertsitatea",
		Dish:           testDish(t, dishID, restaurantID, unitPrice),
		Quantity:       qty,
		UnitPriceCents: unitPrice,
	}
}

func TestAddAssignsUniqueIdentifiers(t *testing.T) {
	c := New()
	const n = 500
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id, err := c.Add(candidateFor(t, 1, 1, 1000, 1))
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if id == "" {
			t.Fatal("empty line item id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s at insertion %d", id, i)
		}
		seen[id] = struct{}{}
	}
	if got := len(c.Items()); got != n {
		t.Fatalf("expected %d items, got %d", n, got)
	}
}

func TestSingleRestaurantInvariant(t *testing.T) {
	c := New()
	if _, err := c.Add(candidateFor(t, 1, 1, 1000, 1)); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := c.Add(candidateFor(t, 2, 7, 2000, 1))
	if err == nil {
		t.Fatal("expected conflict for second restaurant")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}

	// clearing the cart lifts the restriction
	c.Clear()
	if _, err := c.Add(candidateFor(t, 2, 7, 2000, 1)); err != nil {
		t.Fatalf("add after clear: %v", err)
	}
	if got := c.RestaurantID(); got != 2 {
		t.Fatalf("expected restaurant 2, got %d", got)
	}
}

func TestAggregationAfterEveryOperation(t *testing.T) {
	c := New()

	assertTotals := func(wantSubtotal, wantCount int) {
		t.Helper()
		if got := c.Subtotal(); got != wantSubtotal {
			t.Fatalf("subtotal: expected %d, got %d", wantSubtotal, got)
		}
		if got := c.TotalItemCount(); got != wantCount {
			t.Fatalf("item count: expected %d, got %d", wantCount, got)
		}
	}

	assertTotals(0, 0)

	idA, err := c.Add(candidateFor(t, 1, 1, 12000, 2))
	if err != nil {
		t.Fatalf("add A: %v", err)
	}
	assertTotals(24000, 2)

	idB, err := c.Add(candidateFor(t, 1, 2, 15000, 1))
	if err != nil {
		t.Fatalf("add B: %v", err)
	}
	assertTotals(39000, 3)

	c.UpdateQuantity(idA, 5)
	assertTotals(75000, 6)

	c.Remove(idB)
	assertTotals(60000, 5)

	c.Clear()
	assertTotals(0, 0)
	if !c.IsEmpty() {
		t.Fatal("cart should be empty after clear")
	}
}

func TestQuantityFloorAndNoOps(t *testing.T) {
	c := New()
	id, err := c.Add(candidateFor(t, 1, 1, 5000, 2))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	c.UpdateQuantity("missing-id", 3) // no-op
	if got := c.TotalItemCount(); got != 2 {
		t.Fatalf("no-op update changed state, count=%d", got)
	}

	c.Remove("missing-id") // no-op
	if got := len(c.Items()); got != 1 {
		t.Fatalf("no-op remove changed state, len=%d", got)
	}

	c.UpdateQuantity(id, 0)
	if !c.IsEmpty() {
		t.Fatal("quantity 0 must remove the item")
	}

	id, err = c.Add(candidateFor(t, 1, 1, 5000, 2))
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	c.UpdateQuantity(id, -5)
	if !c.IsEmpty() {
		t.Fatal("negative quantity must remove the item")
	}
}

func TestUnitPriceFrozenAtInsertion(t *testing.T) {
	c := New()
	candidate := candidateFor(t, 1, 1, 10000, 1)
	id, err := c.Add(candidate)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// mutate the source candidate after insertion; the cart copy must not move
	candidate.UnitPriceCents = 99999
	items := c.Items()
	if len(items) != 1 || items[0].ID != id {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].UnitPriceCents != 10000 {
		t.Fatalf("unit price must be frozen, got %d", items[0].UnitPriceCents)
	}
	if items[0].AddedAt.IsZero() {
		t.Fatal("insertion timestamp not set")
	}
}

func TestKeeperIsolation(t *testing.T) {
	k := NewKeeper()

	cartA := k.For("ane@mondragon.edu")
	cartB := k.For("jon@mondragon.edu")
	if cartA == cartB {
		t.Fatal("different shoppers must get different carts")
	}
	if k.For("ane@mondragon.edu") != cartA {
		t.Fatal("same shopper must get the same cart back")
	}

	if _, err := cartA.Add(candidateFor(t, 1, 1, 1000, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !cartB.IsEmpty() {
		t.Fatal("carts must not share state")
	}

	k.Drop("ane@mondragon.edu")
	if !k.For("ane@mondragon.edu").IsEmpty() {
		t.Fatal("dropped cart must come back empty")
	}
}
