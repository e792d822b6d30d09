package controllers

import (
	"context"
	"net/http"

	"github.com/exclusivefashions/storefront/internal/content"
	"github.com/exclusivefashions/storefront/internal/rotator"
	"github.com/exclusivefashions/storefront/internal/settings"
	"github.com/exclusivefashions/storefront/internal/views"
	"github.com/exclusivefashions/storefront/pkg/logger"
)

// SettingsReader serves the current business profile.
type SettingsReader interface {
	Get(ctx context.Context) settings.Result
}

// carouselState is the read side of a running rotator.
type carouselState interface {
	Index() int
	Direction() rotator.Direction
}

// Site bundles what every page needs to render its shell.
type Site struct {
	Settings      SettingsReader
	Content       content.Site
	Views         *views.Renderer
	Markdown      *content.Renderer
	Announcements carouselState
	Hero          carouselState
	Logger        *logger.Logger
}

// Layout assembles the shared page chrome for the current request.
func (s *Site) Layout(ctx context.Context, title, path string) views.Layout {
	result := s.Settings.Get(ctx)
	announcements := s.Content.Announcements
	active := activeIndex(s.Announcements, len(announcements.Messages))
	return views.Layout{
		Title:        title,
		Path:         path,
		Settings:     result.Settings,
		Announcement: views.NewAnnouncementView(announcements, active, direction(s.Announcements), false),
		Nav:          s.Content.Nav,
		Footer:       s.Content.Footer,
	}
}

// NotFound renders the 404 page.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	page := views.NotFoundPage{Layout: s.Layout(r.Context(), "Not found", r.URL.Path)}
	s.render(w, r, http.StatusNotFound, views.PageNotFound, page)
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := s.Views.Write(w, status, name, data); err != nil {
		s.logger().Error(s.logger().WithField(r.Context(), "page", name), "page.render_failed", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Site) fragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := s.Views.WriteFragment(w, name, data); err != nil {
		s.logger().Error(s.logger().WithField(r.Context(), "fragment", name), "fragment.render_failed", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Site) logger() *logger.Logger {
	if s.Logger == nil {
		return logger.Nop()
	}
	return s.Logger
}

func activeIndex(r carouselState, length int) int {
	if r == nil || length == 0 {
		return 0
	}
	i := r.Index()
	if i < 0 || i >= length {
		return 0
	}
	return i
}

func direction(r carouselState) rotator.Direction {
	if r == nil {
		return rotator.Forward
	}
	return r.Direction()
}
