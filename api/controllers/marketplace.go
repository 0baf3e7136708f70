package controllers

import (
	"net/http"
	"strings"

	"github.com/harvestly/harvestly-backend/api/responses"
	"github.com/harvestly/harvestly-backend/api/validators"
	"github.com/harvestly/harvestly-backend/internal/marketplace"
	"github.com/harvestly/harvestly-backend/pkg/enums"
	pkgerrors "github.com/harvestly/harvestly-backend/pkg/errors"
	"github.com/harvestly/harvestly-backend/pkg/logger"
)

// BrowseOffers serves the ranked marketplace listing.
func BrowseOffers(svc marketplace.Service, maxLimit int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "marketplace service unavailable"))
			return
		}

		sortMode, err := validators.ParseSortQuery(r, "sort")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category != "" && category != enums.CategoryAll && !enums.ProduceCategory(category).IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]any{"value": category}))
			return
		}

		lat, lng, err := validators.ParseLatLngQuery(r, "lat", "lng")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var buyerLocation *marketplace.LatLng
		if lat != nil && lng != nil {
			buyerLocation = &marketplace.LatLng{Lat: *lat, Lng: *lng}
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Browse(r.Context(), marketplace.BrowseInput{
			Category:      category,
			Search:        r.URL.Query().Get("q"),
			Sort:          sortMode,
			BuyerLocation: buyerLocation,
			Limit:         limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ListCategories serves the category summary for filter pickers.
func ListCategories(svc marketplace.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "marketplace service unavailable"))
			return
		}

		summaries, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"categories": summaries})
	}
}
