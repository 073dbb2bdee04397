package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, Known("CustomField"))
	assert.True(t, Known("CustomObject"))
	assert.False(t, Known("SomeExoticType"))
}

func TestUnknown(t *testing.T) {
	t.Parallel()

	unknown := Unknown("CustomField", []string{"fullName", "label", "colour", "length", "wibble"})
	assert.Equal(t, []string{"colour", "wibble"}, unknown)
}

func TestUnknown_AllRecognized(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Unknown("CustomObject", []string{"fullName", "label", "pluralLabel"}))
}

func TestUnknown_TypeNotInTable(t *testing.T) {
	t.Parallel()

	// No data means no opinion: nothing is flagged.
	assert.Nil(t, Unknown("SomeExoticType", []string{"anything"}))
}
