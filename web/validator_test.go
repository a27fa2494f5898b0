package web_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semka95/repositories/backend/web"
)

type titled struct {
	Title string `json:"title" validate:"required,upper"`
}

func TestAppValidator(t *testing.T) {
	v, err := web.NewAppValidator()
	require.NoError(t, err)

	err = v.RegisterTag("upper", "{0} must be upper case", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, r := range s {
			if r >= 'a' && r <= 'z' {
				return false
			}
		}
		return true
	})
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.V.Struct(titled{Title: "GO"}))
	})

	t.Run("custom tag translated with json name", func(t *testing.T) {
		err := v.V.Struct(titled{Title: "go"})
		require.Error(t, err)

		fields := err.(validator.ValidationErrors).Translate(v.Translator)
		assert.Equal(t, "title must be upper case", fields["titled.title"])
	})

	t.Run("default translation", func(t *testing.T) {
		err := v.V.Struct(titled{})
		require.Error(t, err)

		fields := err.(validator.ValidationErrors).Translate(v.Translator)
		assert.Equal(t, "title is a required field", fields["titled.title"])
	})

	t.Run("var", func(t *testing.T) {
		assert.NoError(t, v.V.Var("ABC", "upper"))
		assert.Error(t, v.V.Var("abc", "upper"))
	})
}
