package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "tecelar/internal/errors"
)

var validate = validator.New()

// ValidateForSubmit gates save and PDF preview. A blank client name fails
// before any network call is attempted. Date and time are pre-populated at
// session start, so their format checks only catch later hand edits.
func ValidateForSubmit(order Order) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(order.Client) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "cliente",
			Message: "client name is required",
		})
	}

	if err := validate.Struct(order); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				if fe.Field() == "Client" {
					continue // already reported with the trimmed check
				}
				details = append(details, apperrors.ValidationDetail{
					Field:   fe.Field(),
					Message: "must match " + fe.Tag(),
				})
			}
		} else {
			return apperrors.NewInternalError("validating order", err)
		}
	}

	for _, item := range order.Items {
		if item.LineNumber < 0 || item.LineNumber >= LinesPerPage {
			details = append(details, apperrors.ValidationDetail{
				Field:   "itens",
				Message: "line number out of range",
			})
			break
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("order is not ready to submit", details...)
	}

	return nil
}

// IsMissingClient reports whether err is the validation failure for a blank
// client name.
func IsMissingClient(err error) bool {
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		return false
	}
	for _, d := range ve.Details {
		if d.Field == "cliente" {
			return true
		}
	}
	return false
}
