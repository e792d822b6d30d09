package controllers

import (
	"net/http"

	"github.com/exclusivefashions/storefront/internal/catalog"
	"github.com/exclusivefashions/storefront/internal/filters"
	"github.com/exclusivefashions/storefront/internal/grid"
	"github.com/exclusivefashions/storefront/internal/links"
	"github.com/exclusivefashions/storefront/internal/views"
	"github.com/exclusivefashions/storefront/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// Home renders the landing page with the hero, category chips and trending products.
func Home(site *Site, svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hero := site.Content.Hero
		page := views.HomePage{
			Layout:   site.Layout(ctx, "", r.URL.Path),
			Hero:     views.NewHeroView(hero, activeIndex(site.Hero, len(hero.Slides)), direction(site.Hero), false),
			Chips:    site.Content.CategoryChips,
			Featured: svc.ListFeatured(ctx),
		}
		site.render(w, r, http.StatusOK, views.PageHome, page)
	}
}

// ProductListing renders the filter bar and the first page of the grid.
func ProductListing(site *Site, svc catalog.Service, recorder *metrics.StorefrontMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()
		state := filters.Parse(q)

		g := grid.New(svc, recorder)
		defer g.Close()
		g.Apply(ctx, state)
		if err := g.Wait(ctx); err != nil {
			site.logger().Warn(site.logger().WithFilterSignature(ctx, state.Signature().String()), "grid.wait.aborted")
		}

		page := views.NewListingPage(site.Layout(ctx, "Shop", r.URL.Path), q, svc.ListCategories(ctx), g.Snapshot())
		site.render(w, r, http.StatusOK, views.PageListing, page)
	}
}

// ProductMore serves the next grid page to the infinite scroll sentinel. The
// page parameter names the last page the client already holds.
func ProductMore(site *Site, svc catalog.Service, recorder *metrics.StorefrontMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state := filters.Parse(r.URL.Query())

		g := grid.New(svc, recorder)
		defer g.Close()
		g.Resume(state, state.Page)
		g.SentinelVisible(ctx)
		if err := g.Wait(ctx); err != nil {
			site.logger().Warn(site.logger().WithFilterSignature(ctx, state.Signature().String()), "grid.wait.aborted")
		}

		site.fragment(w, r, views.FragmentGridPage, views.NewGridView(g.Snapshot()))
	}
}

// ProductDetail renders one product or the not-found page.
func ProductDetail(site *Site, svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		product, err := svc.GetProductBySlug(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			site.NotFound(w, r)
			return
		}

		layout := site.Layout(ctx, product.Name, r.URL.Path)
		page := views.DetailPage{
			Layout:      layout,
			Product:     *product,
			Description: site.Markdown.Render(product.Description),
			OrderHref:   links.WhatsAppProduct(layout.Settings.WhatsAppNumber, product.Name, product.Slug),
			Instagram:   links.Instagram(layout.Settings.InstagramHandle),
		}
		site.render(w, r, http.StatusOK, views.PageDetail, page)
	}
}

// NotFound is the router's fallback.
func NotFound(site *Site) http.HandlerFunc {
	return site.NotFound
}
