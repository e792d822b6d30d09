package models

import (
	"time"

	"github.com/exclusivefashions/storefront/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductMedia stores ordered gallery entries; the lowest sort order is the thumbnail.
type ProductMedia struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Type      enums.MediaType `gorm:"column:type;not null;default:image"`
	URL       string          `gorm:"column:url;not null"`
	SortOrder int             `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (ProductMedia) TableName() string { return "product_media" }

func (m *ProductMedia) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
