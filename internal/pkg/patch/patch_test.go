//go:build unit

package patch_test

import (
	"testing"

	"wellness-booking/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	n := 3
	assert.Equal(t, 3, patch.Coalesce(&n, 1))
	assert.Equal(t, 1, patch.Coalesce(nil, 1))
}

func TestPtr(t *testing.T) {
	assert.Nil(t, patch.Ptr("", true))
	if p := patch.Ptr("", false); assert.NotNil(t, p) {
		assert.Empty(t, *p)
	}
	if p := patch.Ptr("SPA10", true); assert.NotNil(t, p) {
		assert.Equal(t, "SPA10", *p)
	}
}
