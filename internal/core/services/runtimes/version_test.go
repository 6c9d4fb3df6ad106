package runtimes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/runtimes"
)

func TestParseVersion(t *testing.T) {
	assert.Equal(t, []int{3, 8, 1}, runtimes.ParseVersion("Python (3.8.1)"))
	assert.Equal(t, []int{12, 14, 0}, runtimes.ParseVersion("JavaScript (Node.js 12.14.0)"))
	assert.Nil(t, runtimes.ParseVersion("Plain Text"))
}

func TestNewerComparesNumerically(t *testing.T) {
	assert.True(t, runtimes.Newer("Python 3.11", "Python 3.8"))
	assert.True(t, runtimes.Newer("10.2.0", "9.2.0"))
	assert.False(t, runtimes.Newer("3.8", "3.8"))
	assert.True(t, runtimes.Newer("3.8.1", "3.8"))
}

func TestPickNewest(t *testing.T) {
	type rt struct {
		name string
		tag  int
	}
	name := func(r rt) string { return r.name }

	best, ok := runtimes.PickNewest([]rt{{"Python 3.8", 1}, {"Python 3.11", 2}}, name)
	assert.True(t, ok)
	assert.Equal(t, 2, best.tag)

	best, ok = runtimes.PickNewest([]rt{{"C++ (GCC 9.2.0)", 1}, {"C++ (Clang 9.2.0)", 2}}, name)
	assert.True(t, ok)
	assert.Equal(t, 1, best.tag, "ties keep first seen")

	_, ok = runtimes.PickNewest([]rt{}, name)
	assert.False(t, ok)
}
