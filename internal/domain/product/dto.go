package product

import (
	"time"

	"github.com/google/uuid"
)

// CreateProductRequest for POST /facilities/{id}/products
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=150"`
	Description  string `json:"description" validate:"max=2000"`
	Category     string `json:"category" validate:"max=80"`
	PricePerUnit int64  `json:"price_per_unit" validate:"required,gte=0"`
	RentalUnit   string `json:"rental_unit" validate:"required,rental_unit"`
	StockTotal   int    `json:"stock_total" validate:"required,gte=1,lte=10000"`
}

// UpdateProductRequest for PUT /products/{id}
type UpdateProductRequest struct {
	Name         string  `json:"name" validate:"omitempty,min=1,max=150"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	Category     *string `json:"category" validate:"omitempty,max=80"`
	PricePerUnit *int64  `json:"price_per_unit" validate:"omitempty,gte=0"`
	StockTotal   *int    `json:"stock_total" validate:"omitempty,gte=0,lte=10000"`
	IsActive     *bool   `json:"is_active"`
}

// ProductResponse for API responses
type ProductResponse struct {
	ID           uuid.UUID `json:"id"`
	FacilityID   uuid.UUID `json:"facility_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	PricePerUnit int64     `json:"price_per_unit"`
	RentalUnit   string    `json:"rental_unit"`
	StockTotal   int       `json:"stock_total"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    string    `json:"created_at"`
}

// ProductResponseFromEntity converts entity to response
func ProductResponseFromEntity(p *Product) *ProductResponse {
	resp := &ProductResponse{
		ID:           p.ID,
		FacilityID:   p.FacilityID,
		Name:         p.Name,
		PricePerUnit: p.PricePerUnit,
		RentalUnit:   string(p.RentalUnit),
		StockTotal:   p.StockTotal,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.Description.Valid {
		resp.Description = p.Description.String
	}
	if p.Category.Valid {
		resp.Category = p.Category.String
	}
	return resp
}
