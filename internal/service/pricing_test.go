package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int64
		unitPrice string
		expected  string
	}{
		{"simple multiply", 3, "4.50", "13.50"},
		{"zero quantity", 0, "4.50", "0"},
		{"zero price", 10, "0", "0"},
		{"negative quantity clamped", -5, "4.50", "0"},
		{"negative price clamped", 3, "-2.00", "0"},
		{"fractional price", 7, "0.80", "5.60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLineTotal(tt.quantity, dec(tt.unitPrice))
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("Expected line total %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		name       string
		subtotal   string
		taxPercent string
		expected   string
	}{
		{"whole percent", "100.00", "10", "10.00"},
		{"fractional percent rounds to cents", "15.75", "8.25", "1.30"},
		{"zero percent", "100.00", "0", "0"},
		{"negative percent treated as zero", "100.00", "-5", "0"},
		{"zero subtotal", "0", "8.25", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTax(dec(tt.subtotal), dec(tt.taxPercent))
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("Expected tax %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCalculateOrderTotals(t *testing.T) {
	items := []models.LineItem{
		{Quantity: 2, UnitPrice: dec("4.50")},
		{Quantity: 3, UnitPrice: dec("2.25")},
	}

	totals := CalculateOrderTotals(items, dec("8.25"))

	if !totals.Subtotal.Equal(dec("15.75")) {
		t.Errorf("Expected subtotal 15.75, got %s", totals.Subtotal)
	}
	if !totals.TaxAmount.Equal(dec("1.30")) {
		t.Errorf("Expected tax 1.30, got %s", totals.TaxAmount)
	}
	if !totals.GrandTotal.Equal(dec("17.05")) {
		t.Errorf("Expected grand total 17.05, got %s", totals.GrandTotal)
	}
}

func TestCalculateOrderTotals_RecomputesLineTotals(t *testing.T) {
	// Stored line totals are ignored; totals always come from quantity and
	// unit price.
	items := []models.LineItem{
		{Quantity: 2, UnitPrice: dec("5.00"), LineTotal: dec("999.99")},
	}

	totals := CalculateOrderTotals(items, decimal.Zero)

	if !totals.Subtotal.Equal(dec("10.00")) {
		t.Errorf("Expected subtotal 10.00, got %s", totals.Subtotal)
	}
	if !totals.GrandTotal.Equal(dec("10.00")) {
		t.Errorf("Expected grand total 10.00, got %s", totals.GrandTotal)
	}
}

func TestCalculateOrderTotals_EmptyItems(t *testing.T) {
	totals := CalculateOrderTotals(nil, dec("8.25"))

	if !totals.Subtotal.IsZero() {
		t.Errorf("Expected zero subtotal, got %s", totals.Subtotal)
	}
	if !totals.TaxAmount.IsZero() {
		t.Errorf("Expected zero tax, got %s", totals.TaxAmount)
	}
	if !totals.GrandTotal.IsZero() {
		t.Errorf("Expected zero grand total, got %s", totals.GrandTotal)
	}
}

func TestCalculateOrderTotals_NegativeLinesClamped(t *testing.T) {
	items := []models.LineItem{
		{Quantity: -4, UnitPrice: dec("3.00")},
		{Quantity: 2, UnitPrice: dec("-1.50")},
		{Quantity: 1, UnitPrice: dec("6.00")},
	}

	totals := CalculateOrderTotals(items, dec("10"))

	if !totals.Subtotal.Equal(dec("6.00")) {
		t.Errorf("Expected subtotal 6.00, got %s", totals.Subtotal)
	}
	if !totals.GrandTotal.Equal(dec("6.60")) {
		t.Errorf("Expected grand total 6.60, got %s", totals.GrandTotal)
	}
}

func TestCalculateOrderTotals_Idempotent(t *testing.T) {
	items := []models.LineItem{
		{Quantity: 3, UnitPrice: dec("19.99")},
		{Quantity: 1, UnitPrice: dec("0.01")},
	}

	first := CalculateOrderTotals(items, dec("7.5"))
	second := CalculateOrderTotals(items, dec("7.5"))

	if !first.Subtotal.Equal(second.Subtotal) || !first.TaxAmount.Equal(second.TaxAmount) || !first.GrandTotal.Equal(second.GrandTotal) {
		t.Errorf("Expected identical totals on recompute, got %+v then %+v", first, second)
	}
}
