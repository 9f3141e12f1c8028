package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"booksapi/internal/httpx"
)

var validate = validator.New()

// DecodeInput reads a JSON request body into an Input. A malformed body is
// the caller's problem; field-shape checks happen in ValidateInput.
func DecodeInput(r *http.Request) (Input, error) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return Input{}, err
	}
	return in, nil
}

// ValidateInput checks field shapes and normalizes the ISBN in place.
// A nil return means the input is ready for the service layer: string caps
// and the year range hold, and ISBN is either nil or a canonical 10/13-digit
// string.
func ValidateInput(in *Input) []httpx.ErrorDetail {
	var details []httpx.ErrorDetail

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			details = append(details, httpx.ErrorDetail{Field: "body", Message: "invalid input"})
			return details
		}
		for _, fe := range fieldErrs {
			details = append(details, httpx.ErrorDetail{
				Field:   jsonFieldName(fe.Field()),
				Message: validationMessage(fe),
			})
		}
	}

	if in.ISBN != nil {
		normalized, err := NormalizeISBN(*in.ISBN)
		switch {
		case errors.Is(err, ErrISBNFormat):
			details = append(details, httpx.ErrorDetail{
				Field:   "isbn",
				Message: "isbn must contain only digits (and optional hyphens, spaces, or periods)",
			})
		case errors.Is(err, ErrISBNLength):
			details = append(details, httpx.ErrorDetail{
				Field:   "isbn",
				Message: "isbn must be exactly 10 or 13 digits",
			})
		case normalized == "":
			in.ISBN = nil
		default:
			in.ISBN = &normalized
		}
	}

	return details
}

func validationMessage(fe validator.FieldError) string {
	field := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func jsonFieldName(structField string) string {
	switch structField {
	case "PublicationYear":
		return "publication_year"
	default:
		return strings.ToLower(structField)
	}
}
