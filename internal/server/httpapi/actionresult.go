package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// rootField addresses errors that belong to the whole form rather than a
// single input.
const rootField = "root"

const (
	msgInvalidEmail   = "Invalid email address"
	msgRequired       = "This field is required"
	msgInvalidRequest = "Invalid request"
	msgRequestFailed  = "Something went wrong while sending the OTP. Please try again."
	msgVerifyFailed   = "Couldn't verify the OTP code. Please check your OTP and ensure it hasn't expired, then try again."
	msgSignInFailed   = "Something went wrong while signing you in. Please try again."
)

// ActionResult is the generic shape every mutating endpoint answers with:
// success with no payload, or failure with a field-path to message mapping
// for field-level form error display.
type ActionResult struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func successResult() ActionResult {
	return ActionResult{Success: true}
}

func errorResult(field, message string) ActionResult {
	return ActionResult{Success: false, Errors: map[string]string{field: message}}
}

var validate = validator.New()

// emailValid reports whether email is a well-formed address. Handlers call
// it on the trimmed value, after binding.
func emailValid(email string) bool {
	return validate.Var(email, "email") == nil
}

// bindingErrors translates a gin binding failure into per-field messages.
// Anything that is not a validator error (malformed JSON and the like)
// becomes a root error.
func bindingErrors(err error) ActionResult {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorResult(rootField, msgInvalidRequest)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fieldName(fe)
		switch fe.Tag() {
		case "required":
			fields[name] = msgRequired
		default:
			fields[name] = msgInvalidRequest
		}
	}

	return ActionResult{Success: false, Errors: fields}
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return "email"
	case "OTP":
		return "otp"
	default:
		return rootField
	}
}

// storeErrors maps a service failure on the issuance path to an action
// result. Unique constraint violations become a field error instead of
// leaking the raw store error; everything else is a generic root message.
func storeErrors(err error, field string) ActionResult {
	if errors.Is(err, common.ErrorAlreadyExists) {
		return errorResult(field, "A record with this "+field+" already exists")
	}
	return errorResult(rootField, msgRequestFailed)
}
