package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sdsmith/stockwatch/internal/store"
)

func int64p(v int64) *int64 { return &v }

func TestRenderStock_Golden(t *testing.T) {
	rows := []store.StockRow{
		{
			RecordedAt: 1615000000,
			Store:      "Best Buy",
			Location:   "Plaza",
			Product:    "Gadget",
			Price:      int64p(1299),
			Quantity:   int64p(1),
		},
		{
			RecordedAt: 1615003600,
			Store:      "Walmart",
			Location:   "Main St",
			Product:    "Nintendo Switch Neon",
			Price:      int64p(39999),
			Quantity:   int64p(3),
		},
		{
			RecordedAt: 1615007200,
			Store:      "Walmart",
			Location:   "Side St",
			Product:    "Ring Fit Adventure",
			Price:      nil,
			Quantity:   int64p(2),
		},
	}

	var buf bytes.Buffer
	renderStock(&buf, rows)

	g := goldie.New(t)
	g.Assert(t, "stock_report", buf.Bytes())
}

func TestRenderStock_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderStock(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty snapshot, got %q", buf.String())
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price *int64
		want  string
	}{
		{nil, "$?"},
		{int64p(0), "$0.00"},
		{int64p(5), "$0.05"},
		{int64p(999), "$9.99"},
		{int64p(39999), "$399.99"},
	}
	for _, tt := range tests {
		if got := formatPrice(tt.price); got != tt.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}
