package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_CustomTags(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		value string
		tag   string
		ok    bool
	}{
		{"plinko", "game", true},
		{"tower", "game", true},
		{"tictactoe", "game", false},
		{"007", "digits3", true},
		{"", "digits3", true},
		{"12", "digits3", false},
		{"1234", "digits3", false},
		{"1a3", "digits3", false},
		{"١٢٣", "digits3", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.value, func(t *testing.T) {
			err := v.ValidateVar(tt.value, tt.tag)
			assert.Equal(t, tt.ok, err == nil)
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("boom")))

	type req struct {
		Username string `validate:"required"`
		Game     string `validate:"game"`
	}
	errs := FormatValidationError(GetValidator().ValidateStruct(req{Game: "chess"}))
	assert.Equal(t, "This field is required", errs["username"])
	assert.Equal(t, "Unknown game", errs["game"])
}

