package usecase

import (
	"github.com/go-playground/validator/v10"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
)

// identifierValidator is safe for concurrent use once built.
var identifierValidator = validator.New()

const (
	emailRule = "required,email"
	// Phone numbers are 10 or 11 plain digits, matching the registration rule.
	phoneRule = "required,number,min=10,max=11"
)

// ClassifyIdentifier reports which OTP channel a login identifier belongs to:
// entity.ChannelEmail for an email address, entity.ChannelSMS for a phone number.
func ClassifyIdentifier(identifier string) (string, error) {
	if identifierValidator.Var(identifier, emailRule) == nil {
		return entity.ChannelEmail, nil
	}
	if identifierValidator.Var(identifier, phoneRule) == nil {
		return entity.ChannelSMS, nil
	}
	return "", domain.ErrInvalidIdentifier
}
