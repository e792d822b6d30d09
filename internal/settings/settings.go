// Package settings serves the singleton business profile with a fallback record.
package settings

import (
	"github.com/exclusivefashions/storefront/pkg/db/models"
)

// Source names where a settings read was served from.
type Source string

const (
	SourceDatabase Source = "database"
	SourceCache    Source = "cache"
	SourceDefault  Source = "default"
)

// Location is one physical branch.
type Location struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	MapURL  string `json:"map_url"`
}

// Settings is the business profile shown across the storefront.
type Settings struct {
	SiteName           string     `json:"site_name"`
	Tagline            string     `json:"tagline"`
	Locations          []Location `json:"locations"`
	PhoneNumber        string     `json:"phone_number"`
	WhatsAppNumber     string     `json:"whatsapp_number"`
	InstagramHandle    string     `json:"instagram_handle"`
	OpeningHours       string     `json:"opening_hours"`
	AnnouncementBanner string     `json:"announcement_banner,omitempty"`
	PaymentsEnabled    bool       `json:"payments_enabled"`
}

// Result pairs the settings with the source that produced them.
type Result struct {
	Settings Settings `json:"settings"`
	Source   Source   `json:"source"`
}

// Default is served whenever the row cannot be read.
func Default() Settings {
	return Settings{
		SiteName: "Exclusive Fashions Ltd",
		Tagline:  "Your one-stop shop for trendy footwear, bags, and accessories.",
		Locations: []Location{
			{
				Name:    "High Street Branch",
				Address: "116–118 High Street, San Fernando, Trinidad",
				MapURL:  "https://maps.google.com",
			},
			{
				Name:    "Carlton Centre Branch",
				Address: "Carlton Centre, 61 St. James Street, San Fernando, Trinidad",
				MapURL:  "https://maps.google.com",
			},
		},
		PhoneNumber:     "1-868-123-4567",
		WhatsAppNumber:  "18681234567",
		InstagramHandle: "exclusive_fashion_ltd_",
		OpeningHours:    "Mon - Sat: 9am - 5pm",
		PaymentsEnabled: false,
	}
}

// FromModel maps the persisted row. Locations without a name are skipped.
func FromModel(row *models.SiteSettings) Settings {
	out := Settings{
		SiteName:        row.SiteName,
		Tagline:         row.Tagline,
		PhoneNumber:     row.PhoneNumber,
		WhatsAppNumber:  row.WhatsAppNumber,
		InstagramHandle: row.InstagramHandle,
		OpeningHours:    row.OpeningHours,
		PaymentsEnabled: row.PaymentsEnabled,
	}
	if row.AnnouncementBanner != nil {
		out.AnnouncementBanner = *row.AnnouncementBanner
	}
	candidates := []Location{
		{Name: row.Location1Name, Address: row.Location1Address, MapURL: row.Location1GmapsURL},
		{Name: row.Location2Name, Address: row.Location2Address, MapURL: row.Location2GmapsURL},
	}
	for _, loc := range candidates {
		if loc.Name != "" {
			out.Locations = append(out.Locations, loc)
		}
	}
	return out
}
