package catalogue

import (
	"strings"

	"github.com/mamadbah2/salesrep/internal/domain/models"
)

// FilterProducts keeps products whose description or code contains q,
// ignoring case. An empty query keeps everything.
func FilterProducts(products []models.Product, q string) []models.Product {
	return filter(products, q, func(p models.Product) []string {
		return []string{p.Description, p.Code}
	})
}

// FilterCustomers keeps customers whose name, phone numbers, address lines
// or city contain q, ignoring case.
func FilterCustomers(customers []models.Customer, q string) []models.Customer {
	return filter(customers, q, func(c models.Customer) []string {
		return []string{c.Name, c.Tel, c.Mobile, c.Address1, c.Address2, c.City}
	})
}

func filter[T any](items []T, q string, fields func(T) []string) []T {
	needle := strings.ToLower(q)
	if needle == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
