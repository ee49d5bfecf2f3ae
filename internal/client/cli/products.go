package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/api"
)

// Products lists a catalog page. Usage: products [skip [limit]].
func (a *App) Products(ctx context.Context, args []string) error {
	skip, limit := 0, 10
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			skip = v
		}
	}
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			limit = v
		}
	}

	products, err := a.api.ListProducts(ctx, skip, limit)
	if err != nil {
		printlnFn("Failed to load products:", api.Message(err))
		return err
	}
	if len(products) == 0 {
		printlnFn("No products.")
		return nil
	}
	for _, p := range products {
		printlnFn(fmt.Sprintf("#%d  %-30s  %8.2f  (stock: %d)", p.ID, p.Name, p.Price, p.StockQuantity))
	}
	return nil
}

// Product shows one catalog entry. Usage: product <id>.
func (a *App) Product(ctx context.Context, args []string) error {
	id, ok := parseID(args, "Usage: product <id>")
	if !ok {
		return nil
	}

	p, err := a.api.GetProduct(ctx, id)
	if err != nil {
		printlnFn("Failed to load product:", api.Message(err))
		return err
	}
	printlnFn(fmt.Sprintf("#%d %s", p.ID, p.Name))
	if p.Description != "" {
		printlnFn(p.Description)
	}
	printlnFn(fmt.Sprintf("Price: %.2f  Stock: %d", p.Price, p.StockQuantity))
	return nil
}

// parseID reads the first argument as a numeric id, printing usage on
// malformed input.
func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn(usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn(usage)
		return 0, false
	}
	return id, true
}
