package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	Word    string `json:"word" validate:"required,max=140"`
	Reading string `json:"reading" validate:"required,max=140"`
}

func TestCheckValidPayload(t *testing.T) {
	assert.Nil(t, Check(samplePayload{Word: "単語", Reading: "読み"}))
}

func TestCheckBlankFields(t *testing.T) {
	errs := Check(samplePayload{})
	assert.Equal(t, "can't be blank", errs["word"])
	assert.Equal(t, "can't be blank", errs["reading"])
}

func TestCheckLengthIsRuneCounted(t *testing.T) {
	// 140 Japanese characters are 420 bytes but exactly at the limit.
	edge := strings.Repeat("あ", 140)
	assert.Nil(t, Check(samplePayload{Word: edge, Reading: "読み"}))

	errs := Check(samplePayload{Word: edge + "あ", Reading: "読み"})
	assert.Equal(t, "is too long (maximum is 140 characters)", errs["word"])
	assert.NotContains(t, errs, "reading")
}

func TestCheckUsesJSONFieldNames(t *testing.T) {
	type withTag struct {
		Email string `json:"email,omitempty" validate:"required,email"`
	}
	errs := Check(withTag{Email: "not-an-email"})
	assert.Equal(t, "must be a valid email address", errs["email"])
}
