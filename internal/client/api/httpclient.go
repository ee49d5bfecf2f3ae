package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
)

// TokenSource supplies the current bearer credential for outgoing requests.
// An empty token means "no session"; the request is then sent unauthenticated.
// The source is read-only from the transport's point of view: only the
// session store writes the underlying slot.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// authTransport is the single outgoing-request hook: it attaches the bearer
// token and a request id to every call going through the authenticated
// client. Requests are cloned before mutation per the RoundTripper contract.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if tok, err := t.tokens.Token(req.Context()); err == nil && tok != "" {
		clone.Header.Set("Authorization", "Bearer "+tok)
	}
	clone.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(clone)
}

// HTTPClient implements Client over the REST surface of the storefront API.
type HTTPClient struct {
	baseURL string
	// authed carries the bearer-token hook; bare is used for the login
	// call only, which must not attach a stale credential.
	authed *http.Client
	bare   *http.Client
}

// NewHTTPClient builds a client rooted at baseURL. tokens provides the
// credential for authenticated calls; timeout bounds each request.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		authed: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{base: http.DefaultTransport, tokens: tokens},
		},
		bare: &http.Client{Timeout: timeout},
	}
}

// do performs one JSON round trip. body (if non-nil) is marshalled as the
// request payload; out (if non-nil) receives the decoded response.
func (c *HTTPClient) do(ctx context.Context, hc *http.Client, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// fastAPI error bodies: {"detail": "..."} for plain failures, or
// {"detail": [{"loc": [...], "msg": "..."}]} for validation rejections.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, kind: kindForStatus(resp.StatusCode)}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var detail string
		if json.Unmarshal(body.Detail, &detail) == nil {
			apiErr.Detail = detail
		} else {
			var fields []fieldError
			if json.Unmarshal(body.Detail, &fields) == nil {
				apiErr.Fields = make(map[string]string, len(fields))
				msgs := make([]string, 0, len(fields))
				for _, f := range fields {
					name := "body"
					if n := len(f.Loc); n > 0 {
						name = fmt.Sprint(f.Loc[n-1])
					}
					apiErr.Fields[name] = f.Msg
					msgs = append(msgs, name+": "+f.Msg)
				}
				apiErr.Detail = strings.Join(msgs, "; ")
			}
		}
	}
	return apiErr
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status >= 500:
		return ErrServer
	default:
		return ErrServer
	}
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) (*models.Identity, error) {
	var id models.Identity
	if err := c.do(ctx, c.authed, http.MethodPost, "/auth/register", data, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Login exchanges credentials for an access token. The endpoint expects a
// form-encoded body and is the one call that bypasses the bearer hook.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.bare.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", decodeError(resp)
	}
	var auth models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return auth.AccessToken, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	if err := c.do(ctx, c.authed, http.MethodGet, "/auth/me", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error) {
	var products []models.Product
	path := fmt.Sprintf("/products/?skip=%d&limit=%d", skip, limit)
	if err := c.do(ctx, c.authed, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, c.authed, http.MethodGet, fmt.Sprintf("/products/%d", productID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, data models.ProductData) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, c.authed, http.MethodPost, "/products/", data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, productID int64, data models.ProductData) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, c.authed, http.MethodPut, fmt.Sprintf("/products/%d", productID), data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, productID int64) error {
	return c.do(ctx, c.authed, http.MethodDelete, fmt.Sprintf("/products/%d", productID), nil, nil)
}

func (c *HTTPClient) GetCart(ctx context.Context) (*models.CartSnapshot, error) {
	return c.cartCall(ctx, http.MethodGet, "/cart/", nil)
}

func (c *HTTPClient) AddCartItem(ctx context.Context, productID int64, quantity int) (*models.CartSnapshot, error) {
	body := struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}{productID, quantity}
	return c.cartCall(ctx, http.MethodPost, "/cart/items", body)
}

func (c *HTTPClient) UpdateCartItem(ctx context.Context, lineID int64, quantity int) (*models.CartSnapshot, error) {
	body := struct {
		Quantity int `json:"quantity"`
	}{quantity}
	return c.cartCall(ctx, http.MethodPut, fmt.Sprintf("/cart/items/%d", lineID), body)
}

func (c *HTTPClient) RemoveCartItem(ctx context.Context, lineID int64) (*models.CartSnapshot, error) {
	return c.cartCall(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d", lineID), nil)
}

func (c *HTTPClient) ClearCart(ctx context.Context) (*models.CartSnapshot, error) {
	return c.cartCall(ctx, http.MethodDelete, "/cart/", nil)
}

func (c *HTTPClient) cartCall(ctx context.Context, method, path string, body any) (*models.CartSnapshot, error) {
	var snap models.CartSnapshot
	if err := c.do(ctx, c.authed, method, path, body, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, paymentMethod string, paymentDetails map[string]any) (*models.Order, error) {
	if paymentDetails == nil {
		paymentDetails = map[string]any{}
	}
	var o models.Order
	path := "/orders/?payment_method=" + url.QueryEscape(paymentMethod)
	if err := c.do(ctx, c.authed, http.MethodPost, path, paymentDetails, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *HTTPClient) ListOrders(ctx context.Context, skip, limit int) ([]models.Order, error) {
	var orders []models.Order
	path := fmt.Sprintf("/orders/?skip=%d&limit=%d", skip, limit)
	if err := c.do(ctx, c.authed, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, c.authed, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *HTTPClient) ListAllOrders(ctx context.Context, skip, limit int) ([]models.Order, error) {
	var orders []models.Order
	path := fmt.Sprintf("/orders/admin/all?skip=%d&limit=%d", skip, limit)
	if err := c.do(ctx, c.authed, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	var o models.Order
	path := fmt.Sprintf("/orders/admin/%d/status?new_status=%s", orderID, url.QueryEscape(string(status)))
	if err := c.do(ctx, c.authed, http.MethodPatch, path, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
