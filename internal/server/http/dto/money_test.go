package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalsAsNumber(t *testing.T) {
	line := OrderLineResponse{ListingID: 3, Quantity: 2, UnitPrice: decimal.RequireFromString("90.5"), Subtotal: decimal.RequireFromString("181")}
	data, err := json.Marshal(line)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"unit_price":90.5`) || !strings.Contains(body, `"subtotal":181`) {
		t.Fatalf("expected numeric money fields, got %s", body)
	}

	var decoded OrderLineResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.UnitPrice.Equal(line.UnitPrice) {
		t.Fatalf("unexpected unit price %s", decoded.UnitPrice)
	}
}
