package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

// RegisterValidations installs the custom binding validations; called
// once at startup.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("attstatus", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.StatusPresent, models.StatusAbsent, models.StatusExcused:
			return true
		}
		return false
	})
}
