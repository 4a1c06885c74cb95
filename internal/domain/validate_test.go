package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "tecelar/internal/errors"
)

func TestValidateForSubmit_MissingClient(t *testing.T) {
	for _, client := range []string{"", "   ", "\t\n"} {
		order := NewOrder(time.Now())
		order.Client = client

		err := ValidateForSubmit(order)

		assert.Error(t, err)
		assert.True(t, IsMissingClient(err), "client %q must be reported as missing", client)
	}
}

func TestValidateForSubmit_ValidOrder(t *testing.T) {
	order := NewOrder(time.Now())
	order.Client = "Tecelagem Aurora"

	assert.NoError(t, ValidateForSubmit(order))
}

func TestValidateForSubmit_BadDateFormat(t *testing.T) {
	order := NewOrder(time.Now())
	order.Client = "Tecelagem Aurora"
	order.Date = "14/03/2026"

	err := ValidateForSubmit(order)

	assert.Error(t, err)
	assert.False(t, IsMissingClient(err))
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestValidateForSubmit_LineOutOfRange(t *testing.T) {
	order := NewOrder(time.Now())
	order.Client = "Tecelagem Aurora"
	order.Items = append(order.Items, DefaultItem(1, LinesPerPage))

	err := ValidateForSubmit(order)
	assert.Error(t, err)
}

func TestIsMissingClient_OtherErrors(t *testing.T) {
	assert.False(t, IsMissingClient(nil))
	assert.False(t, IsMissingClient(apperrors.NewInvalidOperationError("nope")))
	assert.False(t, IsMissingClient(apperrors.NewValidationError("other", apperrors.ValidationDetail{
		Field: "data", Message: "bad format",
	})))
}
