// Package dashboard holds the list views behind the stock and order pages:
// search, tag and status filters, date windows, sort toggles, plus the
// templates that render them.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"apparelstock/internal/domain"
	"apparelstock/internal/services"
)

// ---------- Materials ----------

type MaterialSort string

const (
	MaterialSortNone     MaterialSort = ""
	MaterialSortName     MaterialSort = "name"
	MaterialSortQuantity MaterialSort = "quantity"
)

// NextMaterialSort cycles none -> name -> quantity -> none.
func NextMaterialSort(s MaterialSort) MaterialSort {
	switch s {
	case MaterialSortNone:
		return MaterialSortName
	case MaterialSortName:
		return MaterialSortQuantity
	}
	return MaterialSortNone
}

type MaterialQuery struct {
	Search string
	Tags   []string
	Sort   MaterialSort
}

type MaterialRow struct {
	domain.Material
	LowStock bool
}

// FilterMaterials keeps materials whose name contains Search (any case) and
// that carry at least one of Tags. An empty Tags keeps everything.
func FilterMaterials(ms []domain.Material, q MaterialQuery) []MaterialRow {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]MaterialRow, 0, len(ms))
	for _, m := range ms {
		if needle != "" && !strings.Contains(strings.ToLower(m.Name), needle) {
			continue
		}
		if len(q.Tags) > 0 && !hasAny(m.Tags, q.Tags) {
			continue
		}
		out = append(out, MaterialRow{Material: m, LowStock: services.LowStock(m)})
	}

	switch q.Sort {
	case MaterialSortName:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].Name, out[j].Name) })
	case MaterialSortQuantity:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	}
	return out
}

func hasAny(have []string, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// StepQuantity applies a stepper click. The page never shows a quantity
// below zero, though the API itself accepts one.
func StepQuantity(qty, delta int) int {
	if n := qty + delta; n > 0 {
		return n
	}
	return 0
}

// TagChoices are the tags offered on the create form: the configured
// vocabulary when there is one, otherwise the tags already in use.
func TagChoices(policy services.TagPolicy, inUse []string) []string {
	if c := policy.Choices(); len(c) > 0 {
		return c
	}
	return inUse
}

// ---------- Orders ----------

type OrderSort string

const (
	OrderSortNone     OrderSort = ""
	OrderSortID       OrderSort = "id"
	OrderSortDelivery OrderSort = "delivery"
	OrderSortFrom     OrderSort = "from"
)

// NextOrderSort cycles none -> id -> delivery -> from -> none.
func NextOrderSort(s OrderSort) OrderSort {
	switch s {
	case OrderSortNone:
		return OrderSortID
	case OrderSortID:
		return OrderSortDelivery
	case OrderSortDelivery:
		return OrderSortFrom
	}
	return OrderSortNone
}

// OrderQuery filters the order queue. From and To are whole days; a zero
// value leaves that side of the window open.
type OrderQuery struct {
	Search   string
	Statuses []domain.OrderStatus
	From     time.Time
	To       time.Time
	Sort     OrderSort
}

// ParseDay parses a YYYY-MM-DD date as midnight UTC.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FilterOrders builds the order queue. Cancelled orders are hidden unless
// the status filter asks for them.
func FilterOrders(orders []domain.Order, q OrderQuery) []domain.Order {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	wantStatus := map[domain.OrderStatus]bool{}
	for _, s := range q.Statuses {
		wantStatus[s] = true
	}
	var start, end time.Time
	if !q.From.IsZero() {
		start = q.From.Truncate(24 * time.Hour)
	}
	if !q.To.IsZero() {
		end = q.To.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	}

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if len(wantStatus) > 0 {
			if !wantStatus[o.Status] {
				continue
			}
		} else if o.Status == domain.StatusCancelled {
			continue
		}
		if needle != "" && !containsFold(needle, o.Description, o.OrderFrom, o.ContactInfo) {
			continue
		}
		if !start.IsZero() || !end.IsZero() {
			when, ok := deliveryTime(o)
			if !ok {
				continue
			}
			if !start.IsZero() && when.Before(start) {
				continue
			}
			if !end.IsZero() && !when.Before(end) {
				continue
			}
		}
		out = append(out, o)
	}

	switch q.Sort {
	case OrderSortID:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	case OrderSortDelivery:
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := deliveryTime(out[i])
			b, _ := deliveryTime(out[j])
			return a.Before(b)
		})
	case OrderSortFrom:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].OrderFrom, out[j].OrderFrom) })
	}
	return out
}

func deliveryTime(o domain.Order) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, o.ScheduledDelivery)
	return t, err == nil
}

func containsFold(needle string, hay ...string) bool {
	for _, h := range hay {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
