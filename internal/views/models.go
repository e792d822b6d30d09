package views

import (
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/exclusivefashions/storefront/internal/admin"
	"github.com/exclusivefashions/storefront/internal/catalog"
	"github.com/exclusivefashions/storefront/internal/content"
	"github.com/exclusivefashions/storefront/internal/filters"
	"github.com/exclusivefashions/storefront/internal/grid"
	"github.com/exclusivefashions/storefront/internal/inquiries"
	"github.com/exclusivefashions/storefront/internal/rotator"
	"github.com/exclusivefashions/storefront/internal/settings"
	"github.com/exclusivefashions/storefront/pkg/enums"
)

// Paths used by the rendered links.
const (
	ListingPath      = "/products"
	MorePath         = "/products/more"
	ProductsPath     = "/products/"
	HeroPath         = "/carousel/hero"
	AnnouncementPath = "/carousel/announcements"
)

// Carousel query parameters. ParamTo is "next", "prev", "tick" or a slide index.
const (
	ParamFrom  = "from"
	ParamTo    = "to"
	ParamHover = "hover"

	StepNext = "next"
	StepPrev = "prev"
	StepTick = "tick"
)

// Layout is shared by every full page.
type Layout struct {
	Title        string
	Path         string
	Settings     settings.Settings
	Announcement AnnouncementView
	Nav          []content.Link
	Footer       []content.Link
}

// HomePage is the landing page.
type HomePage struct {
	Layout
	Hero     HeroView
	Chips    []content.Link
	Featured []catalog.ProductDTO
}

// CarouselStep is one indicator of a carousel.
type CarouselStep struct {
	Label  string
	Href   string
	Active bool
}

// Carousel is the navigation state of a rotating region. Every href returns the
// region re-rendered as a fragment.
type Carousel struct {
	Active    int
	Direction string
	Paused    bool
	PrevHref  string
	NextHref  string
	TickHref  string
	// EverySeconds is the timer period; zero when the region does not rotate.
	EverySeconds int
	Steps        []CarouselStep
}

// HeroView is the home page slider.
type HeroView struct {
	Carousel
	Slides []content.Slide
}

// AnnouncementView is the rotating part of the announcement bar.
type AnnouncementView struct {
	Carousel
	Messages []content.Announcement
}

// FilterLink is one clickable filter, sort or category option.
type FilterLink struct {
	Label  string
	Href   string
	Active bool
}

// GridView is the product grid with its sentinel.
type GridView struct {
	Items   []catalog.ProductDTO
	Message string
	// NextHref is empty once pagination has ended.
	NextHref string
}

// ListingPage is the filterable product listing.
type ListingPage struct {
	Layout
	Categories []FilterLink
	Flags      []FilterLink
	Sorts      []FilterLink
	ClearHref  string
	HasFilters bool
	Grid       GridView
}

// DetailPage shows one product.
type DetailPage struct {
	Layout
	Product     catalog.ProductDTO
	Description template.HTML
	OrderHref   string
	Instagram   string
}

// ContactPage holds the inquiry form and its outcome.
type ContactPage struct {
	Layout
	Form      inquiries.Input
	Errors    map[string]string
	Submitted bool
	Failed    bool
}

// NotFoundPage is rendered for unknown routes and products.
type NotFoundPage struct {
	Layout
}

// AdminLoginPage is the sign-in form.
type AdminLoginPage struct {
	Layout
	Email string
	Error string
}

// AdminDashboardPage greets the signed-in account.
type AdminDashboardPage struct {
	Layout
	Principal admin.Principal
}

// NewGridView converts a grid snapshot. The sentinel points at the page after the
// last one loaded.
func NewGridView(snap grid.Snapshot) GridView {
	view := GridView{Items: snap.Items, Message: snap.Message()}
	if snap.HasMore && !snap.Loading() {
		q := snap.State.Values()
		view.NextHref = filters.Href(MorePath, filters.WithPage(q, snap.Page))
	}
	return view
}

// NewListingPage builds the filter bar for the current query.
func NewListingPage(layout Layout, q url.Values, categories []catalog.CategoryDTO, snap grid.Snapshot) ListingPage {
	state := filters.Parse(q)
	page := ListingPage{
		Layout:     layout,
		ClearHref:  filters.Href(ListingPath, filters.ClearFilters(q)),
		HasFilters: state.HasActiveFilters(),
		Grid:       NewGridView(snap),
	}
	for _, c := range categories {
		page.Categories = append(page.Categories, FilterLink{
			Label:  c.Name,
			Href:   filters.Href(ListingPath, filters.ToggleCategory(q, c.Slug)),
			Active: state.Category == c.Slug,
		})
	}
	page.Flags = []FilterLink{
		{Label: "On Sale", Href: filters.Href(ListingPath, filters.ToggleFlag(q, filters.FlagOnSale)), Active: state.OnSale},
		{Label: "New Arrivals", Href: filters.Href(ListingPath, filters.ToggleFlag(q, filters.FlagIsNew)), Active: state.IsNew},
	}
	for _, key := range enums.SortKeys() {
		page.Sorts = append(page.Sorts, FilterLink{
			Label:  key.Label(),
			Href:   filters.Href(ListingPath, filters.SetSort(q, key)),
			Active: state.Sort == key,
		})
	}
	return page
}

// NewCarousel describes a region of len(labels) slides showing active after a
// move in dir. A region of one slide, or a non-positive interval, never polls.
func NewCarousel(path string, labels []string, active int, dir rotator.Direction, paused bool, interval time.Duration) Carousel {
	c := Carousel{Active: active, Direction: "forward", Paused: paused}
	if dir == rotator.Backward {
		c.Direction = "backward"
	}
	if len(labels) < 2 {
		return c
	}
	c.PrevHref = carouselHref(path, active, StepPrev)
	c.NextHref = carouselHref(path, active, StepNext)
	if secs := int(interval / time.Second); secs > 0 {
		c.TickHref = carouselHref(path, active, StepTick)
		c.EverySeconds = secs
	}
	for i, label := range labels {
		c.Steps = append(c.Steps, CarouselStep{
			Label:  label,
			Href:   carouselHref(path, active, strconv.Itoa(i)),
			Active: i == active,
		})
	}
	return c
}

// NewHeroView builds the hero slider.
func NewHeroView(hero content.Hero, active int, dir rotator.Direction, paused bool) HeroView {
	labels := make([]string, len(hero.Slides))
	for i, s := range hero.Slides {
		labels[i] = s.CategoryName
	}
	return HeroView{
		Carousel: NewCarousel(HeroPath, labels, active, dir, paused, hero.RotateInterval),
		Slides:   hero.Slides,
	}
}

// NewAnnouncementView builds the rotating announcement messages.
func NewAnnouncementView(a content.Announcements, active int, dir rotator.Direction, paused bool) AnnouncementView {
	labels := make([]string, len(a.Messages))
	for i, m := range a.Messages {
		labels[i] = m.Text
	}
	return AnnouncementView{
		Carousel: NewCarousel(AnnouncementPath, labels, active, dir, paused, a.RotateInterval),
		Messages: a.Messages,
	}
}

func carouselHref(path string, from int, to string) string {
	q := url.Values{}
	q.Set(ParamFrom, strconv.Itoa(from))
	q.Set(ParamTo, to)
	return path + "?" + q.Encode()
}
