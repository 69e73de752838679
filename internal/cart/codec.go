package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/nikolayk812/storefront-demo/internal/domain"
)

// StorageKey is the persisted cart key. Bump the version suffix when the
// stored layout changes so old entries are simply not read.
const StorageKey = "storefront_cart_v1"

// MaxStoredQuantity is the largest quantity a line can hold. Encode and
// Decode both cap quantities to it.
const MaxStoredQuantity = math.MaxInt32

// Encode serializes quantities as a JSON object of product id to quantity.
// Quantities above MaxStoredQuantity are written as MaxStoredQuantity.
func Encode(lines map[domain.ProductID]int) (string, error) {
	capped := make(map[domain.ProductID]int, len(lines))
	for id, qty := range lines {
		capped[id] = min(qty, MaxStoredQuantity)
	}

	data, err := json.Marshal(capped)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored cart. Entries that are not positive whole numbers
// are dropped and larger ones are capped at MaxStoredQuantity; a document
// that is not a JSON object is an error.
func Decode(data string) (map[domain.ProductID]int, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("dec.Decode: %w", err)
	}

	lines := make(map[domain.ProductID]int, len(raw))
	for id, v := range raw {
		if id == "" {
			continue
		}
		if qty, ok := quantity(v); ok {
			lines[domain.ProductID(id)] = qty
		}
	}

	return lines, nil
}

func quantity(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	f, err := n.Float64()
	if err != nil || f <= 0 || f != math.Trunc(f) {
		return 0, false
	}
	if f > MaxStoredQuantity {
		return MaxStoredQuantity, true
	}
	return int(f), true
}
