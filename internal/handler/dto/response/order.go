package response

import (
	"time"

	"webstore-service/internal/usecase/queries"
)

type CartBookResponse struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

type CartResponse struct {
	OrderID    *int64             `json:"order_id,omitempty"`
	Status     string             `json:"status"`
	Books      []CartBookResponse `json:"books"`
	TotalPrice float64            `json:"total_price"`
}

func FromCartView(v *queries.CartView) *CartResponse {
	return &CartResponse{
		OrderID:    v.OrderID,
		Status:     v.Status,
		Books:      fromCartBooks(v.Books),
		TotalPrice: v.TotalPrice,
	}
}

type OrderResponse struct {
	ID        int64              `json:"id"`
	OrderDate *time.Time         `json:"order_date,omitempty"`
	Status    string             `json:"status"`
	Books     []CartBookResponse `json:"books"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	return &OrderResponse{
		ID:        v.ID,
		OrderDate: v.OrderDate,
		Status:    v.Status,
		Books:     fromCartBooks(v.Books),
	}
}

func fromCartBooks(books []queries.CartBookView) []CartBookResponse {
	out := make([]CartBookResponse, len(books))
	for i, b := range books {
		out[i] = CartBookResponse{ID: b.ID, Title: b.Title, Price: b.Price}
	}
	return out
}
