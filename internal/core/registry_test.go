package core

import (
	"testing"
)

func registerTestDatasets(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)

	Register(Definition{Info: DatasetInfo{
		Key:          "orders",
		FilePatterns: []string{"Retail.OrderHistory"},
		Sequence:     10,
	}})
	Register(Definition{Info: DatasetInfo{
		Key:          "digital_orders",
		FilePatterns: []string{"Digital Orders.csv", "Digital Orders."},
		Sequence:     30,
	}})
	Register(Definition{Info: DatasetInfo{
		Key:          "digital_payments",
		FilePatterns: []string{"Digital Orders Monetary.csv", "Digital Orders Monetary."},
		Sequence:     50,
	}})
}

func TestRegister_DuplicatePanics(t *testing.T) {
	registerTestDatasets(t)

	defer func() {
		if recover() == nil {
			t.Fatal("Register() should panic on duplicate key")
		}
	}()
	Register(Definition{Info: DatasetInfo{Key: "orders"}})
}

func TestGet(t *testing.T) {
	registerTestDatasets(t)

	if _, ok := Get("orders"); !ok {
		t.Error("Get(orders) not found")
	}
	if _, ok := Get("nope"); ok {
		t.Error("Get(nope) should not be found")
	}
}

func TestAll_SortedBySequence(t *testing.T) {
	registerTestDatasets(t)

	defs := All()
	if len(defs) != 3 {
		t.Fatalf("len(All()) = %d, want 3", len(defs))
	}
	for i := 1; i < len(defs); i++ {
		if defs[i-1].Info.Sequence > defs[i].Info.Sequence {
			t.Errorf("All() not sorted: %s before %s", defs[i-1].Info.Key, defs[i].Info.Key)
		}
	}
}

func TestMatch_LongestPatternWins(t *testing.T) {
	registerTestDatasets(t)

	def, ok := Match("Digital Orders Monetary.1.csv")
	if !ok {
		t.Fatal("Match() found nothing")
	}
	if def.Info.Key != "digital_payments" {
		t.Errorf("Match() = %s, want digital_payments", def.Info.Key)
	}

	def, ok = Match("Digital Orders.1.csv")
	if !ok || def.Info.Key != "digital_orders" {
		t.Errorf("Match() = %s, want digital_orders", def.Info.Key)
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	registerTestDatasets(t)

	def, ok := Match("retail.orderhistory.2.csv")
	if !ok || def.Info.Key != "orders" {
		t.Errorf("Match() = %v, %v; want orders", def.Info.Key, ok)
	}
}

func TestMatch_NoMatch(t *testing.T) {
	registerTestDatasets(t)

	if _, ok := Match("Unknown.Export.csv"); ok {
		t.Error("Match() should not match unknown file")
	}
}

func TestOverride(t *testing.T) {
	registerTestDatasets(t)

	if err := Override("orders", []string{"MyOrders"}, false); err != nil {
		t.Fatalf("Override() error = %v", err)
	}
	def, ok := Match("MyOrders-2024.csv")
	if !ok || def.Info.Key != "orders" {
		t.Errorf("Match() after override = %v, %v; want orders", def.Info.Key, ok)
	}

	if err := Override("orders", nil, true); err != nil {
		t.Fatalf("Override() error = %v", err)
	}
	if _, ok := Match("Retail.OrderHistory.1.csv"); ok {
		t.Error("disabled dataset should not match")
	}

	if err := Override("nope", nil, false); err == nil {
		t.Error("Override() should fail for unknown dataset")
	}
}
