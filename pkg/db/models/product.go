package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog listing. Slug is immutable once published.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Name        string          `gorm:"column:name;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	Description *string         `gorm:"column:description"`
	PriceTTD    decimal.Decimal `gorm:"column:price_ttd;type:numeric(10,2);not null"`
	IsNew       bool            `gorm:"column:is_new;not null;default:false"`
	OnSale      bool            `gorm:"column:on_sale;not null;default:false"`
	Featured    bool            `gorm:"column:featured;not null;default:false"`
	InStock     bool            `gorm:"column:in_stock;not null;default:true"`
	Sizes       pq.StringArray  `gorm:"column:sizes;type:text[]"`
	Colors      pq.StringArray  `gorm:"column:colors;type:text[]"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[]"`
	Media       []ProductMedia  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
