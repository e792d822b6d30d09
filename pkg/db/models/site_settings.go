package models

import "time"

// SiteSettingsID is the primary key of the only settings row.
const SiteSettingsID = 1

// SiteSettings is the singleton business profile row.
type SiteSettings struct {
	ID                 int       `gorm:"column:id;primaryKey"`
	SiteName           string    `gorm:"column:site_name;not null"`
	Tagline            string    `gorm:"column:tagline;not null"`
	Location1Name      string    `gorm:"column:location_1_name;not null"`
	Location1Address   string    `gorm:"column:location_1_address;not null"`
	Location1GmapsURL  string    `gorm:"column:location_1_gmaps_url;not null"`
	Location2Name      string    `gorm:"column:location_2_name;not null"`
	Location2Address   string    `gorm:"column:location_2_address;not null"`
	Location2GmapsURL  string    `gorm:"column:location_2_gmaps_url;not null"`
	PhoneNumber        string    `gorm:"column:phone_number;not null"`
	WhatsAppNumber     string    `gorm:"column:whatsapp_number;not null"`
	InstagramHandle    string    `gorm:"column:instagram_handle;not null"`
	OpeningHours       string    `gorm:"column:opening_hours;not null"`
	AnnouncementBanner *string   `gorm:"column:announcement_banner"`
	PaymentsEnabled    bool      `gorm:"column:payments_enabled;not null;default:false"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SiteSettings) TableName() string { return "site_settings" }
