package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID is an opaque product key. Catalog documents may carry it as a
// JSON string or a JSON number; both decode to the same textual form.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("json.Unmarshal: %w", err)
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id[%s] is neither string nor number: %w", data, err)
	}
	*id = ProductID(n.String())
	return nil
}

func (id ProductID) String() string {
	return string(id)
}

type Product struct {
	ID          ProductID       `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviews"`

	// DiscountPercent is only set when the source specifies a discount.
	DiscountPercent decimal.NullDecimal `json:"discountPct"`

	Badge       string `json:"badge,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}
