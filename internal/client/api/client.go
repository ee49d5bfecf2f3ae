package api

import (
	"context"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
)

// Client is the full consumed surface of the storefront API.
//
// Every method maps to exactly one HTTP call. Methods that mutate the cart
// return the complete post-mutation snapshot; callers are expected to
// replace their local copy with it verbatim.
type Client interface {
	// Auth.
	Register(ctx context.Context, data models.RegisterData) (*models.Identity, error)
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*models.Identity, error)

	// Catalog.
	ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error)
	GetProduct(ctx context.Context, productID int64) (*models.Product, error)

	// Catalog administration (superuser only).
	CreateProduct(ctx context.Context, data models.ProductData) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID int64, data models.ProductData) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error

	// Cart.
	GetCart(ctx context.Context) (*models.CartSnapshot, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) (*models.CartSnapshot, error)
	UpdateCartItem(ctx context.Context, lineID int64, quantity int) (*models.CartSnapshot, error)
	RemoveCartItem(ctx context.Context, lineID int64) (*models.CartSnapshot, error)
	ClearCart(ctx context.Context) (*models.CartSnapshot, error)

	// Orders.
	CreateOrder(ctx context.Context, paymentMethod string, paymentDetails map[string]any) (*models.Order, error)
	ListOrders(ctx context.Context, skip, limit int) ([]models.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*models.Order, error)

	// Order administration (superuser only).
	ListAllOrders(ctx context.Context, skip, limit int) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error)
}
