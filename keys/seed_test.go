package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitInterval_OpenBounds(t *testing.T) {
	var lo, hi [8]byte
	for i := range hi {
		hi[i] = 0xff
	}
	assert.Greater(t, unitInterval(lo), 0.0)
	assert.Less(t, unitInterval(hi), 1.0)
	assert.Less(t, unitInterval(lo), unitInterval(hi))
}
