// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("price_change", validatePriceChange)
		_ = v.RegisterValidation("history_range", validateHistoryRange)
	}
}

func validatePriceChange(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "gainers", "losers", "all":
		return true
	}
	return false
}

func validateHistoryRange(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "1D", "1W", "1M", "3M", "1Y":
		return true
	}
	return false
}
