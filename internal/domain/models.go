package domain

// Material is an apparel stock item. PackSize doubles as the restock unit and
// the low-stock threshold.
type Material struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Color       string     `db:"color" json:"color"`
	Size        string     `db:"size" json:"size"`
	Quantity    int        `db:"quantity" json:"quantity"`
	PackSize    int        `db:"pack_size" json:"packSize"`
	Tags        StringList `db:"tags" json:"tags"`
	ImageURL    *string    `db:"image_url" json:"imageUrl"`
	MinQuantity *int       `db:"min_quantity" json:"minQuantity"` // legacy, always null
	CreatedAt   string     `db:"created_at" json:"createdAt"`
	UpdatedAt   string     `db:"updated_at" json:"updatedAt"`
}

// MaterialPatch holds the fields a partial update may change. Nil means keep.
type MaterialPatch struct {
	Name     *string
	Color    *string
	Size     *string
	Quantity *int
	PackSize *int
	Tags     *StringList
	ImageURL *string
}

// Product is a catalog item with variant dimensions.
type Product struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	Stock       int        `db:"stock" json:"stock"`
	Image       *string    `db:"image" json:"image"`
	Categories  StringList `db:"categories" json:"categories"`
	Sizes       StringList `db:"sizes" json:"sizes"`
	Colors      StringList `db:"colors" json:"colors"`
	CreatedAt   string     `db:"created_at" json:"createdAt"`
	UpdatedAt   string     `db:"updated_at" json:"updatedAt"`
}

type ProductPatch struct {
	Name        *string
	Description *string
	Stock       *int
	Image       *string
	Categories  *StringList
	Sizes       *StringList
	Colors      *StringList
}

type OrderStatus string

const (
	StatusCreated    OrderStatus = "CREATED"
	StatusReceived   OrderStatus = "RECEIVED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
	StatusFailed     OrderStatus = "FAILED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusCreated, StatusReceived, StatusProcessing, StatusShipped,
	StatusDelivered, StatusCancelled, StatusFailed,
}

type Order struct {
	ID                int64       `db:"id" json:"id"`
	OrderFrom         string      `db:"order_from" json:"orderFrom"`
	ContactInfo       string      `db:"contact_info" json:"contactInfo"`
	Description       string      `db:"description" json:"description"`
	Quantity          int         `db:"quantity" json:"quantity"`
	ScheduledDelivery string      `db:"scheduled_delivery" json:"scheduledDelivery"`
	Status            OrderStatus `db:"status" json:"status"`
	CreatedAt         string      `db:"created_at" json:"createdAt"`
	UpdatedAt         string      `db:"updated_at" json:"updatedAt"`
}

type OrderPatch struct {
	OrderFrom         *string
	ContactInfo       *string
	Description       *string
	Quantity          *int
	ScheduledDelivery *string
	Status            *OrderStatus
}

// DeleteResult is the acknowledgement returned by every delete.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
