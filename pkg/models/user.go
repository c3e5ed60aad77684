package models

import (
	"github.com/ovisslabs/oviss-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// User is the single live profile for the authenticated session.
type User struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	DOB           string          `json:"dob"`
	Gender        enums.Gender    `json:"gender"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	ProfilePicRef *string         `json:"profilePicRef,omitempty"`
}
