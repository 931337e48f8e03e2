package domain

import (
	"strconv"
	"strings"
)

// LineItem one (article, quantity) pair of an order composition
type LineItem struct {
	Article  string
	Quantity int
}

// ParseComposition decodes "ART, QTY, ART, QTY". Empty tokens are dropped, a trailing
// unpaired token is discarded and so is any pair whose quantity is not an integer.
// Quantities are returned as written, callers decide what to do with zero or negatives.
func ParseComposition(text string) []LineItem {
	var parts []string
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var items []LineItem
	for i := 0; i+1 < len(parts); i += 2 {
		qty, err := strconv.Atoi(parts[i+1])
		if err != nil {
			continue
		}
		items = append(items, LineItem{Article: parts[i], Quantity: qty})
	}
	return items
}

// FormatComposition is the inverse of ParseComposition
func FormatComposition(items []LineItem) string {
	flat := make([]string, 0, len(items)*2)
	for _, it := range items {
		flat = append(flat, it.Article, strconv.Itoa(it.Quantity))
	}
	return strings.Join(flat, ", ")
}
