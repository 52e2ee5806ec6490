package fault

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClasses(t *testing.T) {
	v := Validationf("please enter a valid %s", "date")
	assert.True(t, IsValidation(v))
	assert.False(t, IsPersistence(v))

	p := Persistence(errors.New("disk full"))
	assert.True(t, IsPersistence(p))
	assert.False(t, IsValidation(p))

	assert.False(t, IsValidation(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "please enter a valid date", Message(Validationf("please enter a valid date")))
	assert.Equal(t, "disk full", Message(Persistence(errors.New("disk full"))))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
