package controllers

import (
	"net/http"

	"github.com/ovisslabs/oviss-backend/api/responses"
	"github.com/ovisslabs/oviss-backend/api/validators"
	"github.com/ovisslabs/oviss-backend/internal/session"
	"github.com/ovisslabs/oviss-backend/pkg/enums"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
)

type requestCodeBody struct {
	Identifier string `json:"identifier" validate:"required,max=120"`
	Mode       string `json:"mode" validate:"required,oneof=phone email"`
}

type verifyBody struct {
	Identifier string `json:"identifier" validate:"required,max=120"`
	Mode       string `json:"mode" validate:"required,oneof=phone email"`
	Code       string `json:"code" validate:"required,len=6"`
}

type createAccountBody struct {
	Name   string `json:"name" validate:"required,max=120"`
	DOB    string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone  string `json:"phone" validate:"omitempty,max=30"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// AuthRequestCode starts the verification flow for the given identifier.
func AuthRequestCode(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body requestCodeBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identifier := validators.SanitizeString(body.Identifier, 120)
		if err := manager.RequestCode(r.Context(), identifier, enums.AuthMode(body.Mode)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status":             "code_sent",
			"resendAfterSeconds": int(manager.ResendRemaining().Seconds()),
		})
	}
}

// AuthVerify submits the verification code and completes the login.
func AuthVerify(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body verifyBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identifier := validators.SanitizeString(body.Identifier, 120)
		result, err := manager.Verify(r.Context(), identifier, enums.AuthMode(body.Mode), body.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthCreateAccount finishes sign-up for a verified visitor with no stored
// profile.
func AuthCreateAccount(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createAccountBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := manager.CreateAccount(r.Context(), session.CreateAccountInput{
			Name:   validators.SanitizeString(body.Name, 120),
			DOB:    body.DOB,
			Gender: enums.Gender(body.Gender),
			Phone:  validators.SanitizeString(body.Phone, 30),
			Email:  validators.SanitizeString(body.Email, 120),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AuthLogout ends the session. The stored profile stays on device.
func AuthLogout(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager.Logout(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthSession reports the session phase so the front end can route screens.
func AuthSession(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"state":                  manager.State(),
			"resendRemainingSeconds": int(manager.ResendRemaining().Seconds()),
		})
	}
}
