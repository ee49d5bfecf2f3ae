package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/api"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
)

func (a *App) printCart(snap *models.CartSnapshot) {
	if snap == nil || len(snap.Items) == 0 {
		printlnFn("Your cart is empty.")
		return
	}
	for _, line := range snap.Items {
		printlnFn(fmt.Sprintf("line %d: %s x%d  (%.2f each)",
			line.ID, line.Product.Name, line.Quantity, line.Product.Price))
	}
	printlnFn(fmt.Sprintf("Total: %.2f", snap.TotalPrice))
}

// ShowCart renders the current snapshot, fetching it if none is held yet.
func (a *App) ShowCart(ctx context.Context) error {
	if !a.admit("/cart", false) {
		return nil
	}

	snap := a.cart.Snapshot()
	if snap == nil {
		var err error
		snap, err = a.cart.Fetch(ctx)
		if err != nil {
			printlnFn("Failed to load cart:", a.cart.LastError())
			return err
		}
	}
	a.printCart(snap)
	return nil
}

// Add puts a product into the cart. Usage: add <productID> [qty].
func (a *App) Add(ctx context.Context, args []string) error {
	if !a.admit("/cart", false) {
		return nil
	}
	productID, ok := parseID(args, "Usage: add <productID> [qty]")
	if !ok {
		return nil
	}
	qty := 1
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			printlnFn("Quantity must be a positive integer.")
			return nil
		}
		qty = v
	}

	snap, err := a.cart.AddItem(ctx, productID, qty)
	if err != nil {
		printlnFn("Failed to add item:", a.cart.LastError())
		return err
	}
	a.printCart(snap)
	return nil
}

// Update changes a line's quantity. A quantity below 1 is translated into a
// remove, per the cart store's caller contract. Usage: update <lineID> <qty>.
func (a *App) Update(ctx context.Context, args []string) error {
	if !a.admit("/cart", false) {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: update <lineID> <qty>")
		return nil
	}
	lineID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: update <lineID> <qty>")
		return nil
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		printlnFn("Usage: update <lineID> <qty>")
		return nil
	}

	var snap *models.CartSnapshot
	if qty < 1 {
		snap, err = a.cart.RemoveItem(ctx, lineID)
	} else {
		snap, err = a.cart.UpdateQuantity(ctx, lineID, qty)
	}
	if err != nil {
		printlnFn("Failed to update cart:", a.cart.LastError())
		return err
	}
	a.printCart(snap)
	return nil
}

// Remove deletes a line. Usage: remove <lineID>.
func (a *App) Remove(ctx context.Context, args []string) error {
	if !a.admit("/cart", false) {
		return nil
	}
	lineID, ok := parseID(args, "Usage: remove <lineID>")
	if !ok {
		return nil
	}

	snap, err := a.cart.RemoveItem(ctx, lineID)
	if err != nil {
		printlnFn("Failed to remove item:", a.cart.LastError())
		return err
	}
	a.printCart(snap)
	return nil
}

// EmptyCart clears the cart on the server.
func (a *App) EmptyCart(ctx context.Context) error {
	if !a.admit("/cart", false) {
		return nil
	}

	snap, err := a.cart.ClearRemote(ctx)
	if err != nil {
		printlnFn("Failed to clear cart:", a.cart.LastError())
		return err
	}
	a.printCart(snap)
	return nil
}

// Checkout places an order from the current cart, then refreshes the cart
// snapshot from the server. Usage: checkout <payment_method>.
func (a *App) Checkout(ctx context.Context, args []string) error {
	if !a.admit("/cart", false) {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: checkout <payment_method>")
		return nil
	}

	order, err := a.api.CreateOrder(ctx, args[0], nil)
	if err != nil {
		printlnFn("Checkout failed:", api.Message(err))
		return err
	}
	printlnFn(fmt.Sprintf("Order #%d placed, total %.2f, status %s", order.ID, order.TotalAmount, order.Status))

	// the server emptied the cart while creating the order; mirror it
	if _, err := a.cart.Fetch(ctx); err != nil {
		printlnFn("Warning: failed to refresh cart:", a.cart.LastError())
	}
	return nil
}
