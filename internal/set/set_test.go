package set

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromAndContains(t *testing.T) {
	s := From([]string{"a", "b", "a"})

	assert.Equal(t, 2, len(s))
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
}

func TestAdd(t *testing.T) {
	s := Set[int]{}
	s.Add(1)
	s.Add(1)
	s.Add(2)

	assert.Equal(t, 2, len(s))
}

func TestSlice(t *testing.T) {
	s := From([]string{"b", "a"})

	sl := s.Slice()
	sort.Strings(sl)

	assert.Equal(t, []string{"a", "b"}, sl)
}
