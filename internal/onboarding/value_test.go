package onboarding

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStringBlankIsAbsent(t *testing.T) {
	assert.False(t, String("").Present())
	assert.False(t, String("   ").Present())
	assert.True(t, String("Kochi").Present())
}

func TestStringPtr(t *testing.T) {
	assert.False(t, StringPtr(nil).Present())

	blank := "  "
	assert.False(t, StringPtr(&blank).Present())

	s := "value"
	assert.True(t, StringPtr(&s).Present())
}

func TestBoolPtrFalseIsAnAnswer(t *testing.T) {
	assert.False(t, BoolPtr(nil).Present())

	no := false
	v := BoolPtr(&no)
	assert.True(t, v.Present())
	assert.Equal(t, false, v.Raw())
}

func TestFloatZeroIsPresent(t *testing.T) {
	zero := 0.0
	assert.True(t, FloatPtr(&zero).Present())
	assert.False(t, FloatPtr(nil).Present())
}

func TestUUIDPtr(t *testing.T) {
	assert.False(t, UUIDPtr(nil).Present())

	nilID := uuid.Nil
	assert.False(t, UUIDPtr(&nilID).Present())

	id := uuid.New()
	assert.True(t, UUIDPtr(&id).Present())
}

func TestAbsentRawIsNil(t *testing.T) {
	assert.Nil(t, Absent().Raw())
}
