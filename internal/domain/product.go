package domain

import "time"

// Product is the normalized catalog record returned by every engine.
// Platform-specific representations are mapped into this shape by the
// infrastructure clients.
type Product struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle,omitempty"`
	Vendor      string           `json:"vendor,omitempty"`
	ProductType string           `json:"product_type,omitempty"`
	Status      string           `json:"status,omitempty"`
	Tags        string           `json:"tags,omitempty"`
	CreatedAt   *time.Time       `json:"created_at,omitempty"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	Images      []ProductImage   `json:"images,omitempty"`
}

// ProductVariant is a purchasable variation of a product.
type ProductVariant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title,omitempty"`
	SKU               string `json:"sku,omitempty"`
	Price             string `json:"price,omitempty"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

// ProductImage is an image attached to a product.
type ProductImage struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Position int    `json:"position,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}
