package controllers

import (
	"net/http"
	"strconv"

	"github.com/exclusivefashions/storefront/internal/rotator"
	"github.com/exclusivefashions/storefront/internal/views"
)

// HeroCarousel re-renders the hero slider after one navigation step.
func HeroCarousel(site *Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hero := site.Content.Hero
		rot, ok := carouselStep(r, len(hero.Slides))
		if !ok {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		view := views.NewHeroView(hero, rot.Index(), rot.Direction(), rot.Paused())
		site.fragment(w, r, views.FragmentHero, view)
	}
}

// AnnouncementCarousel re-renders the rotating announcements after one navigation step.
func AnnouncementCarousel(site *Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announcements := site.Content.Announcements
		rot, ok := carouselStep(r, len(announcements.Messages))
		if !ok {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		view := views.NewAnnouncementView(announcements, rot.Index(), rot.Direction(), rot.Paused())
		site.fragment(w, r, views.FragmentAnnouncement, view)
	}
}

// carouselStep replays one move on a rotator positioned where the client is.
// A malformed from starts at the first slide; a malformed target is rejected.
func carouselStep(r *http.Request, length int) (*rotator.Rotator, bool) {
	q := r.URL.Query()
	from, err := strconv.Atoi(q.Get(views.ParamFrom))
	if err != nil {
		from = 0
	}
	rot := rotator.New(length, 0, rotator.WithIndex(from))
	rot.Hover(q.Get(views.ParamHover) == "true")

	switch to := q.Get(views.ParamTo); to {
	case views.StepNext:
		rot.Next()
	case views.StepPrev:
		rot.Prev()
	case views.StepTick, "":
		rot.Tick()
	default:
		target, err := strconv.Atoi(to)
		if err != nil {
			return nil, false
		}
		rot.GoTo(target)
	}
	return rot, true
}
