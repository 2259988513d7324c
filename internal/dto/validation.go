package dto

import (
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the ledger's custom tags to gin's validator.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	if err := v.RegisterValidation("account_type", func(fl validator.FieldLevel) bool {
		return domain.AccountType(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("display_as", func(fl validator.FieldLevel) bool {
		return domain.DisplayAs(fl.Field().String()).IsValid()
	})
}
