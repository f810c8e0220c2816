package transactiondelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/corebank/corebank/internal/domain"
)

// ValidTransactionType checks that the bound value names a supported operation.
var ValidTransactionType validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if transactionType, ok := fieldLevel.Field().Interface().(domain.TransactionType); ok {
		return domain.IsValidTransactionType(transactionType)
	}

	return false
}
