package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/api"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
)

// AllOrders lists every order in the system (admin view).
func (a *App) AllOrders(ctx context.Context) error {
	if !a.admit("/admin/orders", true) {
		return nil
	}

	orders, err := a.api.ListAllOrders(ctx, 0, 100)
	if err != nil {
		printlnFn("Failed to load orders:", api.Message(err))
		return err
	}
	for i := range orders {
		printlnFn(fmt.Sprintf("user %d:", orders[i].UserID))
		printOrder(&orders[i])
	}
	return nil
}

// SetStatus updates an order's status. Usage: setstatus <orderID> <status>.
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if !a.admit("/admin/orders", true) {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: setstatus <orderID> <PENDING|PROCESSING|SHIPPED|DELIVERED|CANCELLED>")
		return nil
	}
	orderID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: setstatus <orderID> <status>")
		return nil
	}

	o, err := a.api.UpdateOrderStatus(ctx, orderID, models.OrderStatus(args[1]))
	if err != nil {
		printlnFn("Failed to update status:", api.Message(err))
		return err
	}
	printOrder(o)
	return nil
}

// AddProduct interactively creates a catalog entry (admin view).
func (a *App) AddProduct(ctx context.Context) error {
	if !a.admit("/admin/products", true) {
		return nil
	}

	data, err := a.promptProduct()
	if err != nil {
		return err
	}

	p, err := a.api.CreateProduct(ctx, *data)
	if err != nil {
		printlnFn("Failed to create product:", api.Message(err))
		return err
	}
	printlnFn(fmt.Sprintf("Created product #%d %s", p.ID, p.Name))
	return nil
}

// EditProduct interactively updates a catalog entry. Usage: editproduct <id>.
func (a *App) EditProduct(ctx context.Context, args []string) error {
	if !a.admit("/admin/products", true) {
		return nil
	}
	id, ok := parseID(args, "Usage: editproduct <id>")
	if !ok {
		return nil
	}

	data, err := a.promptProduct()
	if err != nil {
		return err
	}

	p, err := a.api.UpdateProduct(ctx, id, *data)
	if err != nil {
		printlnFn("Failed to update product:", api.Message(err))
		return err
	}
	printlnFn(fmt.Sprintf("Updated product #%d %s", p.ID, p.Name))
	return nil
}

// DelProduct removes a catalog entry. Usage: delproduct <id>.
func (a *App) DelProduct(ctx context.Context, args []string) error {
	if !a.admit("/admin/products", true) {
		return nil
	}
	id, ok := parseID(args, "Usage: delproduct <id>")
	if !ok {
		return nil
	}

	if err := a.api.DeleteProduct(ctx, id); err != nil {
		printlnFn("Failed to delete product:", api.Message(err))
		return err
	}
	printlnFn("Deleted product", id)
	return nil
}

func (a *App) promptProduct() (*models.ProductData, error) {
	name, err := getSimpleText(a.reader, "Product name", os.Stdout)
	if err != nil {
		return nil, err
	}
	description, err := getOptionalText(a.reader, "Description", os.Stdout)
	if err != nil {
		return nil, err
	}
	priceText, err := getSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		return nil, err
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		printlnFn("Invalid price.")
		return nil, err
	}
	stockText, err := getSimpleText(a.reader, "Stock quantity", os.Stdout)
	if err != nil {
		return nil, err
	}
	stock, err := strconv.Atoi(stockText)
	if err != nil {
		printlnFn("Invalid stock quantity.")
		return nil, err
	}
	imageURL, err := getOptionalText(a.reader, "Image URL", os.Stdout)
	if err != nil {
		return nil, err
	}

	return &models.ProductData{
		Name:          name,
		Description:   description,
		Price:         &price,
		StockQuantity: &stock,
		ImageURL:      imageURL,
	}, nil
}
