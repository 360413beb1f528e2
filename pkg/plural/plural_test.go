package plural_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdxtodax/unmdx/pkg/plural"
)

func TestCount(t *testing.T) {
	assert.Equal(t, "", plural.Count(1, "s"))
	assert.Equal(t, "s", plural.Count(0, "s"))
	assert.Equal(t, "s", plural.Count(2, "s"))
}

func TestSlice(t *testing.T) {
	assert.Equal(t, "", plural.Slice([]int{1}, "s"))
	assert.Equal(t, "s", plural.Slice([]int{}, "s"))
	assert.Equal(t, "s", plural.Slice([]int{1, 2}, "s"))
}
