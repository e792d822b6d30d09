package controllers

import (
	"net/http"
	"time"

	"github.com/exclusivefashions/storefront/api/responses"
	"github.com/exclusivefashions/storefront/api/validators"
	"github.com/exclusivefashions/storefront/internal/catalog"
	"github.com/exclusivefashions/storefront/internal/filters"
	"github.com/exclusivefashions/storefront/internal/inquiries"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"github.com/exclusivefashions/storefront/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// APIListProducts returns one listing page. Storage failures read as an empty page;
// a malformed page number is a validation error.
func APIListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, filters.ParamPage, pagination.FirstPage, pagination.FirstPage, pagination.MaxPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state := filters.Parse(r.URL.Query())
		result := svc.ListProducts(r.Context(), catalog.ListInput{
			Page:     page,
			Category: state.Category,
			OnSale:   state.OnSale,
			IsNew:    state.IsNew,
			Sort:     state.Sort,
		})
		if result.Products == nil {
			result.Products = []catalog.ProductDTO{}
		}
		responses.WriteSuccess(w, result)
	}
}

// APIGetProduct returns a product by slug.
func APIGetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func APIListCategories(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := svc.ListCategories(r.Context())
		if categories == nil {
			categories = []catalog.CategoryDTO{}
		}
		responses.WriteSuccess(w, categories)
	}
}

func APISettings(reader SettingsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, reader.Get(r.Context()).Settings)
	}
}

type inquiryCreated struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// APICreateInquiry stores a JSON contact message.
func APICreateInquiry(svc inquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input inquiries.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), nil, w, err)
			return
		}
		inquiry, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, inquiryCreated{ID: inquiry.ID, CreatedAt: inquiry.CreatedAt})
	}
}
