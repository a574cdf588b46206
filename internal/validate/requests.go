package validate

import (
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"apparelstock/internal/domain"
)

// ---------- Materials ----------

// CreateMaterialRequest is the payload for POST /materials. A client-sent
// minQuantity is ignored.
type CreateMaterialRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Color    string   `json:"color" validate:"required,max=100"`
	Size     string   `json:"size" validate:"required,max=50"`
	Quantity *int     `json:"quantity" validate:"required,min=0"`
	PackSize *int     `json:"packSize" validate:"required,min=1"`
	Tags     []string `json:"tags" validate:"omitempty,dive,required"`
	ImageURL *string  `json:"imageUrl" validate:"omitempty,max=2048"`
}

func (r CreateMaterialRequest) Material() domain.Material {
	return domain.Material{
		Name:     r.Name,
		Color:    r.Color,
		Size:     r.Size,
		Quantity: *r.Quantity,
		PackSize: *r.PackSize,
		Tags:     domain.StringList(r.Tags),
		ImageURL: r.ImageURL,
	}
}

// QuantityRequest is the payload for PATCH /materials/:id/quantity. Any
// integer is accepted, negative included.
type QuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type UpdateMaterialRequest struct {
	Name     *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Color    *string   `json:"color" validate:"omitempty,min=1,max=100"`
	Size     *string   `json:"size" validate:"omitempty,min=1,max=50"`
	Quantity *int      `json:"quantity"`
	PackSize *int      `json:"packSize" validate:"omitempty,min=1"`
	Tags     *[]string `json:"tags" validate:"omitempty,dive,required"`
	ImageURL *string   `json:"imageUrl" validate:"omitempty,max=2048"`
}

func (r UpdateMaterialRequest) Patch() domain.MaterialPatch {
	return domain.MaterialPatch{
		Name:     r.Name,
		Color:    r.Color,
		Size:     r.Size,
		Quantity: r.Quantity,
		PackSize: r.PackSize,
		Tags:     listPtr(r.Tags),
		ImageURL: r.ImageURL,
	}
}

// ---------- Products ----------

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Stock       *int     `json:"stock" validate:"required,min=0"`
	Image       *string  `json:"image" validate:"omitempty,max=2048"`
	Categories  []string `json:"categories" validate:"omitempty,dive,required"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,required"`
	Colors      []string `json:"colors" validate:"omitempty,dive,required"`
}

func (r CreateProductRequest) Product() domain.Product {
	return domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Stock:       *r.Stock,
		Image:       r.Image,
		Categories:  domain.StringList(r.Categories),
		Sizes:       domain.StringList(r.Sizes),
		Colors:      domain.StringList(r.Colors),
	}
}

// StockRequest accepts {"stock": n} or the legacy {"quantity": n}.
type StockRequest struct {
	Stock    *int `json:"stock"`
	Quantity *int `json:"quantity"`
}

// Value prefers stock over quantity. Call it only after Struct succeeded.
func (r StockRequest) Value() int {
	if r.Stock != nil {
		return *r.Stock
	}
	return *r.Quantity
}

func stockStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(StockRequest)
	if req.Stock == nil && req.Quantity == nil {
		sl.ReportError(req.Stock, "stock", "Stock", "stock_or_quantity", "")
	}
}

type UpdateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Stock       *int      `json:"stock"`
	Image       *string   `json:"image" validate:"omitempty,max=2048"`
	Categories  *[]string `json:"categories" validate:"omitempty,dive,required"`
	Sizes       *[]string `json:"sizes" validate:"omitempty,dive,required"`
	Colors      *[]string `json:"colors" validate:"omitempty,dive,required"`
}

func (r UpdateProductRequest) Patch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Stock:       r.Stock,
		Image:       r.Image,
		Categories:  listPtr(r.Categories),
		Sizes:       listPtr(r.Sizes),
		Colors:      listPtr(r.Colors),
	}
}

// ---------- Orders ----------

type CreateOrderRequest struct {
	OrderFrom         string  `json:"orderFrom" validate:"required,max=200"`
	ContactInfo       string  `json:"contactInfo" validate:"required,max=200"`
	Description       string  `json:"description" validate:"max=2000"`
	Quantity          *int    `json:"quantity" validate:"required,min=1"`
	ScheduledDelivery string  `json:"scheduledDelivery" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Status            *string `json:"status" validate:"omitempty,oneof=CREATED RECEIVED PROCESSING SHIPPED DELIVERED CANCELLED FAILED"`
}

// Order converts the request; status defaults to CREATED.
func (r CreateOrderRequest) Order() domain.Order {
	status := domain.StatusCreated
	if r.Status != nil {
		status = domain.OrderStatus(*r.Status)
	}
	return domain.Order{
		OrderFrom:         r.OrderFrom,
		ContactInfo:       r.ContactInfo,
		Description:       r.Description,
		Quantity:          *r.Quantity,
		ScheduledDelivery: NormalizeTime(r.ScheduledDelivery),
		Status:            status,
	}
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CREATED RECEIVED PROCESSING SHIPPED DELIVERED CANCELLED FAILED"`
}

type UpdateOrderRequest struct {
	OrderFrom         *string `json:"orderFrom" validate:"omitempty,min=1,max=200"`
	ContactInfo       *string `json:"contactInfo" validate:"omitempty,min=1,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=2000"`
	Quantity          *int    `json:"quantity" validate:"omitempty,min=1"`
	ScheduledDelivery *string `json:"scheduledDelivery" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status            *string `json:"status" validate:"omitempty,oneof=CREATED RECEIVED PROCESSING SHIPPED DELIVERED CANCELLED FAILED"`
}

func (r UpdateOrderRequest) Patch() domain.OrderPatch {
	p := domain.OrderPatch{
		OrderFrom:   r.OrderFrom,
		ContactInfo: r.ContactInfo,
		Description: r.Description,
		Quantity:    r.Quantity,
	}
	if r.ScheduledDelivery != nil {
		t := NormalizeTime(*r.ScheduledDelivery)
		p.ScheduledDelivery = &t
	}
	if r.Status != nil {
		s := domain.OrderStatus(*r.Status)
		p.Status = &s
	}
	return p
}

// NormalizeTime rewrites an RFC 3339 timestamp in UTC. Unparseable input is
// returned unchanged.
func NormalizeTime(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func listPtr(p *[]string) *domain.StringList {
	if p == nil {
		return nil
	}
	l := domain.StringList(*p)
	return &l
}
