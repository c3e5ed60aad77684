package controllers

import (
	"net/http"

	"github.com/ovisslabs/oviss-backend/api/responses"
	"github.com/ovisslabs/oviss-backend/api/validators"
	"github.com/ovisslabs/oviss-backend/internal/session"
	"github.com/ovisslabs/oviss-backend/pkg/enums"
	pkgerrors "github.com/ovisslabs/oviss-backend/pkg/errors"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
)

type updateProfileBody struct {
	Name          *string `json:"name" validate:"omitempty,max=120"`
	DOB           *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone         *string `json:"phone" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email"`
	ProfilePicRef *string `json:"profilePicRef" validate:"omitempty,max=500"`
}

// Me returns the logged-in user's profile.
func Me(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := manager.Current()
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UpdateMe applies partial profile edits; absent fields stay untouched.
func UpdateMe(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateProfileBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		update := session.ProfileUpdate{
			DOB:           body.DOB,
			Phone:         body.Phone,
			Email:         body.Email,
			ProfilePicRef: body.ProfilePicRef,
		}
		if body.Name != nil {
			trimmed := validators.SanitizeString(*body.Name, 120)
			update.Name = &trimmed
		}
		if body.Gender != nil {
			gender := enums.Gender(*body.Gender)
			update.Gender = &gender
		}

		user, err := manager.UpdateProfile(r.Context(), update)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
