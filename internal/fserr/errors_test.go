package fserr

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappers(t *testing.T) {
	err := InvalidArgument("digit width must be positive, got %d", 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "got 0")

	err = NotFound("/missing", fs.ErrNotExist)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "/missing")

	err = NotFound("/file.txt", nil)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "not a directory")

	err = Conflict("x_01.log")
	assert.True(t, errors.Is(err, ErrConflict))
}
