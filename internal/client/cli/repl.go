package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error

	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error

	ShowCart(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	EmptyCart(ctx context.Context) error
	Checkout(ctx context.Context, args []string) error

	Orders(ctx context.Context) error
	Order(ctx context.Context, args []string) error

	AllOrders(ctx context.Context) error
	SetStatus(ctx context.Context, args []string) error
	AddProduct(ctx context.Context) error
	EditProduct(ctx context.Context, args []string) error
	DelProduct(ctx context.Context, args []string) error
}

// runREPL starts the interactive storefront loop.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on 'a'. Unknown commands are reported back to
// the user. The loop exits on scanner EOF or when the user types "exit" or
// "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")

	for {
		printlnFn(fmt.Sprintf("shop %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "products":
			_ = a.Products(ctx, args)

		case "product":
			_ = a.Product(ctx, args)

		case "cart":
			_ = a.ShowCart(ctx)

		case "add":
			_ = a.Add(ctx, args)

		case "update":
			_ = a.Update(ctx, args)

		case "remove":
			_ = a.Remove(ctx, args)

		case "emptycart":
			_ = a.EmptyCart(ctx)

		case "checkout":
			_ = a.Checkout(ctx, args)

		case "orders":
			_ = a.Orders(ctx)

		case "order":
			_ = a.Order(ctx, args)

		case "allorders":
			_ = a.AllOrders(ctx)

		case "setstatus":
			_ = a.SetStatus(ctx, args)

		case "addproduct":
			_ = a.AddProduct(ctx)

		case "editproduct":
			_ = a.EditProduct(ctx, args)

		case "delproduct":
			_ = a.DelProduct(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	printlnFn("Browse: products [skip [limit]], product <id>")
	if !a.isLoggedIn() {
		printlnFn("Account: register, login, exit")
		return
	}
	printlnFn("Cart: cart, add <productID> [qty], update <lineID> <qty>, remove <lineID>, emptycart, checkout <payment_method>")
	printlnFn("Orders: orders, order <id>")
	printlnFn("Account: status, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin: addproduct, editproduct <id>, delproduct <id>, allorders, setstatus <orderID> <status>")
	}
}
