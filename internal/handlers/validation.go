package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the binding rules used by the request DTOs to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// decimal.Decimal is validated through its string form.
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("positive_decimal", validatePositiveDecimal)
		_ = v.RegisterValidation("non_negative_decimal", validateNonNegativeDecimal)
		_ = v.RegisterValidation("money", validateMoney)
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateMonth(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		m := fl.Field().Int()
		return m >= 1 && m <= 12
	}
	return false
}

func parseDecimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && d.IsPositive()
}

func validateNonNegativeDecimal(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && !d.IsNegative()
}

// validateMoney accepts amounts with at most the stored number of decimal places.
func validateMoney(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && domain.ValidateMoney(d, fl.FieldName()) == nil
}
