package validate_test

import (
	"testing"

	"marketplace/internal/validate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	assert.True(t, validate.Password("Str0ngPass"))
	assert.True(t, validate.Password("aB3aB3aB"))

	assert.False(t, validate.Password("Sh0rt"), "under 8 characters")
	assert.False(t, validate.Password("alllower1"), "no uppercase")
	assert.False(t, validate.Password("ALLUPPER1"), "no lowercase")
	assert.False(t, validate.Password("NoDigitsHere"), "no digit")
}

func TestUUID(t *testing.T) {
	id := uuid.NewString()
	got, ok := validate.UUID("  " + id + "  ")
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = validate.UUID("not-a-uuid")
	assert.False(t, ok)
	_, ok = validate.UUID("")
	assert.False(t, ok)
}

func TestQueryParamSanitizers(t *testing.T) {
	assert.Equal(t, "low", validate.Sort("low"))
	assert.Equal(t, "high", validate.Sort(" high "))
	assert.Equal(t, "relevent", validate.Sort("cheapest"))
	assert.Equal(t, "relevent", validate.Sort(""))

	assert.Equal(t, 0, validate.Offset(""))
	assert.Equal(t, 0, validate.Offset("-5"))
	assert.Equal(t, 0, validate.Offset("abc"))
	assert.Equal(t, 40, validate.Offset("40"))

	assert.Equal(t, 20, validate.Limit(""))
	assert.Equal(t, 20, validate.Limit("5"), "below the window")
	assert.Equal(t, 20, validate.Limit("500"), "above the window")
	assert.Equal(t, 50, validate.Limit("50"))
}

func TestStructFlattensValidatorErrors(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,max=5"`
	}

	assert.Nil(t, validate.Struct(req{Email: "a@b.co", Name: "ok"}))

	errs := validate.Struct(req{Email: "nope", Name: "toolongname"})
	require.Len(t, errs, 2)
	byParam := map[string]string{}
	for _, fe := range errs {
		byParam[fe.Param] = fe.Message
	}
	assert.Equal(t, "must be a valid email address", byParam["email"])
	assert.Equal(t, "cannot exceed 5 characters", byParam["name"])
}
