package controllers

import (
	"net/http"

	"github.com/exclusivefashions/storefront/api/validators"
	"github.com/exclusivefashions/storefront/internal/inquiries"
	"github.com/exclusivefashions/storefront/internal/views"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
)

const contactTitle = "Contact us"

// ContactForm renders the empty inquiry form.
func ContactForm(site *Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := views.ContactPage{Layout: site.Layout(r.Context(), contactTitle, r.URL.Path)}
		site.render(w, r, http.StatusOK, views.PageContact, page)
	}
}

// ContactSubmit stores an inquiry and re-renders the form with the outcome.
func ContactSubmit(site *Site, svc inquiries.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := views.ContactPage{Layout: site.Layout(ctx, contactTitle, r.URL.Path)}

		var input inquiries.Input
		err := validators.DecodeForm(r, &input)
		if err == nil {
			_, err = svc.Submit(ctx, input)
		}

		switch {
		case err == nil:
			page.Submitted = true
			site.render(w, r, http.StatusOK, views.PageContact, page)
		case pkgerrors.IsCode(err, pkgerrors.CodeValidation):
			page.Form = input
			page.Errors = validators.FieldErrors(err)
			site.render(w, r, http.StatusUnprocessableEntity, views.PageContact, page)
		default:
			page.Form = input
			page.Failed = true
			site.render(w, r, http.StatusServiceUnavailable, views.PageContact, page)
		}
	}
}
