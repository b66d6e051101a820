package validator

import (
	"ctchen222/tictactoe-hotseat/internal/game"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// cell accepts a board position, 0-8.
	if err := validate.RegisterValidation("cell", func(fl validator.FieldLevel) bool {
		return game.InBounds(int(fl.Field().Int()))
	}); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}
