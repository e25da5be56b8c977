package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/stellar/go-stellar-sdk/strkey"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("public_key", publicKeyValidation)
	_ = validate.RegisterValidation("secret_seed", secretSeedValidation)
	validate.RegisterAlias("not_empty", "required")
	return validate
}

func publicKeyValidation(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	return strkey.IsValidEd25519PublicKey(addr) || strkey.IsValidMuxedAccountEd25519PublicKey(addr)
}

func secretSeedValidation(fl validator.FieldLevel) bool {
	return strkey.IsValidEd25519SecretSeed(fl.Field().String())
}

// FlattenValidationError renders validator errors into a single
// human-readable message, one clause per failed field.
func FlattenValidationError(errs validator.ValidationErrors) string {
	clauses := make([]string, 0, len(errs))
	for _, err := range errs {
		clauses = append(clauses, fmt.Sprintf("%s %s", fieldName(err), msgForFieldError(err)))
	}
	return strings.Join(clauses, "; ")
}

func msgForFieldError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required", "not_empty":
		return "cannot be empty"
	case "public_key":
		return "is not a valid public key"
	case "secret_seed":
		return "is not a valid secret seed"
	default:
		return fmt.Sprintf("failed the %q check", fieldError.Tag())
	}
}

func fieldName(fieldError validator.FieldError) string {
	return strings.ToLower(fieldError.Field())
}
