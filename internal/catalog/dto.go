package catalog

import (
	"time"

	"github.com/exclusivefashions/storefront/pkg/db/models"
	"github.com/exclusivefashions/storefront/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyLabel prefixes rendered prices.
const CurrencyLabel = "TT$"

// ProductDTO is the product shape handed to pages and the JSON API.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	PriceTTD    decimal.Decimal `json:"price_ttd"`
	IsNew       bool            `json:"is_new"`
	OnSale      bool            `json:"on_sale"`
	Featured    bool            `json:"featured"`
	InStock     bool            `json:"in_stock"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Tags        []string        `json:"tags"`
	Category    *CategoryDTO    `json:"category,omitempty"`
	Media       []MediaDTO      `json:"media"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CategoryDTO is a category chip or label.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// MediaDTO is one gallery entry.
type MediaDTO struct {
	Type      enums.MediaType `json:"type"`
	URL       string          `json:"url"`
	SortOrder int             `json:"sort_order"`
}

// NewProductDTO copies the persisted product into its response shape.
func NewProductDTO(product *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:        product.ID,
		Slug:      product.Slug,
		Name:      product.Name,
		PriceTTD:  product.PriceTTD,
		IsNew:     product.IsNew,
		OnSale:    product.OnSale,
		Featured:  product.Featured,
		InStock:   product.InStock,
		Sizes:     append([]string{}, product.Sizes...),
		Colors:    append([]string{}, product.Colors...),
		Tags:      append([]string{}, product.Tags...),
		Media:     make([]MediaDTO, 0, len(product.Media)),
		CreatedAt: product.CreatedAt,
	}
	if product.Description != nil {
		dto.Description = *product.Description
	}
	if product.Category != nil {
		category := NewCategoryDTO(product.Category)
		dto.Category = &category
	}
	for _, m := range product.Media {
		dto.Media = append(dto.Media, MediaDTO{Type: m.Type, URL: m.URL, SortOrder: m.SortOrder})
	}
	return dto
}

// NewProductDTOs converts a page of products.
func NewProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewProductDTO(&rows[i]))
	}
	return out
}

// NewCategoryDTO copies a category.
func NewCategoryDTO(category *models.Category) CategoryDTO {
	return CategoryDTO{ID: category.ID, Name: category.Name, Slug: category.Slug}
}

// Thumbnail is the lowest-ordered image, or nil when the product has none.
func (p ProductDTO) Thumbnail() *MediaDTO {
	for i := range p.Media {
		if p.Media[i].Type == enums.MediaTypeImage {
			return &p.Media[i]
		}
	}
	return nil
}

// Images lists the image entries of the gallery in order.
func (p ProductDTO) Images() []MediaDTO {
	out := make([]MediaDTO, 0, len(p.Media))
	for _, m := range p.Media {
		if m.Type == enums.MediaTypeImage {
			out = append(out, m)
		}
	}
	return out
}

// Videos lists the video entries of the gallery in order.
func (p ProductDTO) Videos() []MediaDTO {
	out := make([]MediaDTO, 0)
	for _, m := range p.Media {
		if m.Type == enums.MediaTypeVideo {
			out = append(out, m)
		}
	}
	return out
}

// PriceLabel renders the price with the currency prefix and two decimals.
func (p ProductDTO) PriceLabel() string {
	return FormatPrice(p.PriceTTD)
}

// FormatPrice renders amount as "TT$ 1,250.00".
func FormatPrice(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	grouped := make([]byte, 0, len(whole)+len(whole)/3)
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, whole[i])
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return CurrencyLabel + " " + sign + string(grouped) + "." + frac
}
