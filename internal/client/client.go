// Package client is a typed HTTP client for the stock API, plus local list
// states that only ever hold rows the server returned.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"apparelstock/internal/domain"
	"apparelstock/internal/validate"
)

// APIError is a non-2xx response. Message is the server's "error" field, or
// the raw body when it is not JSON.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == fiber.StatusNotFound
}

type Client struct {
	BaseURL string
	Timeout time.Duration
}

func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Timeout: 10 * time.Second}
}

func (c *Client) agent(method, path string) *fiber.Agent {
	url := c.BaseURL + path
	var a *fiber.Agent
	switch method {
	case fiber.MethodPost:
		a = fiber.Post(url)
	case fiber.MethodPatch:
		a = fiber.Patch(url)
	case fiber.MethodDelete:
		a = fiber.Delete(url)
	default:
		a = fiber.Get(url)
	}
	return a.Timeout(c.Timeout)
}

// do sends body (when non-nil) as JSON and decodes a 2xx response into out.
func (c *Client) do(method, path string, body, out any) error {
	a := c.agent(method, path)
	if body != nil {
		a.JSON(body)
	}
	code, resp, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		ae := &APIError{Status: code, Message: strings.TrimSpace(string(resp))}
		var payload struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(resp, &payload) == nil && payload.Error != "" {
			ae.Message, ae.Fields = payload.Error, payload.Fields
		}
		return ae
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}

// ---------- Materials ----------

func (c *Client) ListMaterials() ([]domain.Material, error) {
	var out []domain.Material
	return out, c.do(fiber.MethodGet, "/materials", nil, &out)
}

func (c *Client) GetMaterial(id int64) (domain.Material, error) {
	var m domain.Material
	return m, c.do(fiber.MethodGet, fmt.Sprintf("/materials/%d", id), nil, &m)
}

func (c *Client) CreateMaterial(req validate.CreateMaterialRequest) (domain.Material, error) {
	var m domain.Material
	return m, c.do(fiber.MethodPost, "/materials", req, &m)
}

func (c *Client) UpdateMaterialQuantity(id int64, qty int) (domain.Material, error) {
	var m domain.Material
	return m, c.do(fiber.MethodPatch, fmt.Sprintf("/materials/%d/quantity", id), validate.QuantityRequest{Quantity: &qty}, &m)
}

func (c *Client) UpdateMaterial(id int64, req validate.UpdateMaterialRequest) (domain.Material, error) {
	var m domain.Material
	return m, c.do(fiber.MethodPatch, fmt.Sprintf("/materials/%d", id), req, &m)
}

func (c *Client) DeleteMaterial(id int64) (domain.DeleteResult, error) {
	var res domain.DeleteResult
	return res, c.do(fiber.MethodDelete, fmt.Sprintf("/materials/%d", id), nil, &res)
}

func (c *Client) MaterialTags() ([]string, error) {
	var out []string
	return out, c.do(fiber.MethodGet, "/materials/tags", nil, &out)
}

// ---------- Products ----------

func (c *Client) ListProducts() ([]domain.Product, error) {
	var out []domain.Product
	return out, c.do(fiber.MethodGet, "/products", nil, &out)
}

func (c *Client) GetProduct(id int64) (domain.Product, error) {
	var p domain.Product
	return p, c.do(fiber.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p)
}

func (c *Client) CreateProduct(req validate.CreateProductRequest) (domain.Product, error) {
	var p domain.Product
	return p, c.do(fiber.MethodPost, "/products", req, &p)
}

func (c *Client) UpdateProductStock(id int64, stock int) (domain.Product, error) {
	var p domain.Product
	return p, c.do(fiber.MethodPatch, fmt.Sprintf("/products/%d/stock", id), validate.StockRequest{Stock: &stock}, &p)
}

func (c *Client) UpdateProduct(id int64, req validate.UpdateProductRequest) (domain.Product, error) {
	var p domain.Product
	return p, c.do(fiber.MethodPatch, fmt.Sprintf("/products/%d", id), req, &p)
}

func (c *Client) DeleteProduct(id int64) (domain.DeleteResult, error) {
	var res domain.DeleteResult
	return res, c.do(fiber.MethodDelete, fmt.Sprintf("/products/%d", id), nil, &res)
}

func (c *Client) ProductCategories() ([]string, error) {
	var out []string
	return out, c.do(fiber.MethodGet, "/products/categories", nil, &out)
}

// ---------- Orders ----------

func (c *Client) ListOrders() ([]domain.Order, error) {
	var out []domain.Order
	return out, c.do(fiber.MethodGet, "/orders", nil, &out)
}

func (c *Client) GetOrder(id int64) (domain.Order, error) {
	var o domain.Order
	return o, c.do(fiber.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &o)
}

func (c *Client) CreateOrder(req validate.CreateOrderRequest) (domain.Order, error) {
	var o domain.Order
	return o, c.do(fiber.MethodPost, "/orders", req, &o)
}

func (c *Client) UpdateOrderStatus(id int64, status domain.OrderStatus) (domain.Order, error) {
	var o domain.Order
	return o, c.do(fiber.MethodPatch, fmt.Sprintf("/orders/%d/status", id), validate.StatusRequest{Status: string(status)}, &o)
}

func (c *Client) UpdateOrder(id int64, req validate.UpdateOrderRequest) (domain.Order, error) {
	var o domain.Order
	return o, c.do(fiber.MethodPatch, fmt.Sprintf("/orders/%d", id), req, &o)
}

func (c *Client) DeleteOrder(id int64) (domain.DeleteResult, error) {
	var res domain.DeleteResult
	return res, c.do(fiber.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, &res)
}
