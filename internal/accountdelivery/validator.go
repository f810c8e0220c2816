package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/corebank/corebank/internal/domain"
)

// ValidAccountType checks that the bound value names a supported account type.
var ValidAccountType validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if accountType, ok := fieldLevel.Field().Interface().(domain.AccountType); ok {
		return domain.IsValidAccountType(accountType)
	}

	return false
}
