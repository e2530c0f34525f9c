package gtd_test

import (
	"testing"

	"github.com/nicolagi/gtd"
	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	a := gtd.NewID()
	b := gtd.NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.True(t, gtd.ValidID(a))
}

func TestValidID(t *testing.T) {
	assert.True(t, gtd.ValidID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.False(t, gtd.ValidID("p1"))
	assert.False(t, gtd.ValidID(""))
	assert.False(t, gtd.ValidID("Call mom"))
}
