// Package content loads the editorial copy around the catalog: announcements,
// hero slides, category chips and navigation.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

const (
	defaultAnnouncementInterval = 6 * time.Second
	defaultHeroInterval         = 5 * time.Second
)

// Link is a labelled in-site target.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Announcement is one banner message.
type Announcement struct {
	Text string `yaml:"text"`
	Href string `yaml:"href"`
}

// Announcements rotate in the top banner.
type Announcements struct {
	RotateInterval time.Duration  `yaml:"rotate_interval"`
	Messages       []Announcement `yaml:"messages"`
}

// Slide is one hero panel.
type Slide struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	CategoryName string `yaml:"category_name"`
	ImageURL     string `yaml:"image_url"`
	ImageHint    string `yaml:"image_hint"`
	PrimaryCTA   Link   `yaml:"primary_cta"`
	SecondaryCTA Link   `yaml:"secondary_cta"`
}

// Hero rotates slides on the home page.
type Hero struct {
	RotateInterval time.Duration `yaml:"rotate_interval"`
	Slides         []Slide       `yaml:"slides"`
}

// Site is the full content document.
type Site struct {
	Announcements Announcements `yaml:"announcements"`
	Hero          Hero          `yaml:"hero"`
	CategoryChips []Link        `yaml:"category_chips"`
	Nav           []Link        `yaml:"nav"`
	Footer        []Link        `yaml:"footer"`
}

// Load reads the document at path, or the built-in document when path is empty.
func Load(path string) (Site, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Parse(defaultSite)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("read content %s: %w", path, err)
	}
	site, err := Parse(raw)
	if err != nil {
		return Site{}, fmt.Errorf("content %s: %w", path, err)
	}
	return site, nil
}

// Default returns the built-in document.
func Default() Site {
	site, err := Parse(defaultSite)
	if err != nil {
		panic(fmt.Sprintf("embedded site content is invalid: %v", err))
	}
	return site
}

// Parse decodes and validates a content document. Unknown keys are rejected.
func Parse(raw []byte) (Site, error) {
	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return Site{}, fmt.Errorf("decode content: %w", err)
	}
	site.applyDefaults()
	if err := site.validate(); err != nil {
		return Site{}, err
	}
	return site, nil
}

func (s *Site) applyDefaults() {
	if s.Announcements.RotateInterval <= 0 {
		s.Announcements.RotateInterval = defaultAnnouncementInterval
	}
	if s.Hero.RotateInterval <= 0 {
		s.Hero.RotateInterval = defaultHeroInterval
	}
}

func (s Site) validate() error {
	if len(s.Announcements.Messages) == 0 {
		return fmt.Errorf("content: at least one announcement is required")
	}
	if len(s.Hero.Slides) == 0 {
		return fmt.Errorf("content: at least one hero slide is required")
	}
	for i, slide := range s.Hero.Slides {
		if strings.TrimSpace(slide.Title) == "" {
			return fmt.Errorf("content: hero slide %d has no title", i)
		}
	}
	return nil
}
