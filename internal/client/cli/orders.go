package cli

import (
	"context"
	"fmt"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/api"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
)

func printOrder(o *models.Order) {
	printlnFn(fmt.Sprintf("Order #%d  %s  total %.2f  %s",
		o.ID, o.CreatedAt.Local().Format("2006-01-02 15:04"), o.TotalAmount, o.Status))
	for _, line := range o.Items {
		printlnFn(fmt.Sprintf("  product %d x%d @ %.2f", line.ProductID, line.Quantity, line.Price))
	}
}

// Orders lists the current user's order history.
func (a *App) Orders(ctx context.Context) error {
	if !a.admit("/orders", false) {
		return nil
	}

	orders, err := a.api.ListOrders(ctx, 0, 50)
	if err != nil {
		printlnFn("Failed to load orders:", api.Message(err))
		return err
	}
	if len(orders) == 0 {
		printlnFn("No orders yet.")
		return nil
	}
	for i := range orders {
		printOrder(&orders[i])
	}
	return nil
}

// Order shows one order. Usage: order <id>.
func (a *App) Order(ctx context.Context, args []string) error {
	if !a.admit("/orders", false) {
		return nil
	}
	id, ok := parseID(args, "Usage: order <id>")
	if !ok {
		return nil
	}

	o, err := a.api.GetOrder(ctx, id)
	if err != nil {
		printlnFn("Failed to load order:", api.Message(err))
		return err
	}
	printOrder(o)
	return nil
}
