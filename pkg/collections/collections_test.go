package collections_test

import (
	"strings"
	"testing"

	"github.com/alkime/vaultlaunch/pkg/collections"
	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		got := collections.Apply([]string{"code", "agy"}, strings.ToUpper)
		assert.Equal(t, []string{"CODE", "AGY"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		got := collections.Apply(nil, func(s string) int { return len(s) })
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}

func TestFilter(t *testing.T) {
	even := func(i int) bool { return i%2 == 0 }

	assert.Equal(t, []int{2, 4}, collections.Filter([]int{1, 2, 3, 4, 5}, even))
	assert.Nil(t, collections.Filter([]int{1, 3}, even))
	assert.Nil(t, collections.Filter(nil, even))
}
