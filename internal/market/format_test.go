package market

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := map[float64]string{
		2_500_000_000: "$2.50B",
		12_340_000:    "$12.34M",
		1_000_000:     "$1,000,000",
		7890.4:        "$7,890",
		0:             "$0",
	}
	for in, expected := range tests {
		if got := FormatCurrency(in); got != expected {
			t.Errorf("FormatCurrency(%v) expected %s, got %s", in, expected, got)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.015); got != "+1.50%" {
		t.Errorf("expected +1.50%%, got %s", got)
	}
	if got := FormatPercent(-0.0025); got != "-0.25%" {
		t.Errorf("expected -0.25%%, got %s", got)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(0.12345678); got != "$0.1235" {
		t.Errorf("unexpected price format %s", got)
	}
}

func TestTrendOf(t *testing.T) {
	if TrendOf(0) != TrendUp || TrendOf(0.1) != TrendUp || TrendOf(-0.1) != TrendDown {
		t.Error("unexpected trend classification")
	}
}
