package controllers

import (
	"net/http"

	"github.com/ovisslabs/oviss-backend/api/responses"
	"github.com/ovisslabs/oviss-backend/internal/catalog"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
)

func CatalogServices(cat catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.Services())
	}
}

func CatalogOutlets(cat catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.Outlets())
	}
}

func CatalogStylists(cat catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.Stylists())
	}
}

func CatalogTimeSlots(cat catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.TimeSlots())
	}
}
