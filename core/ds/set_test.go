package ds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_Json(t *testing.T) {
	s := NewSet("hello", "world", "!")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.Equal(t, `["hello","world","!"]`, string(data))

	data, err = json.Marshal(*s)
	require.NoError(t, err)
	require.Equal(t, `["hello","world","!"]`, string(data))
}

func TestSet_AddRemove(t *testing.T) {
	s := NewSet[string]()
	require.True(t, s.IsEmpty())

	s.Add("hello")
	s.Add("hello")
	require.Equal(t, 1, s.Len())

	s.Remove("hello", "missing")
	require.True(t, s.IsEmpty())
}

func TestSet_PreservesOrder(t *testing.T) {
	s := NewSet(3, 1, 2)
	s.Remove(1)
	s.Add(4)
	require.Equal(t, []int{3, 2, 4}, s.Values())

	var seen []int
	s.ForEach(func(v int) { seen = append(seen, v) })
	require.Equal(t, []int{3, 2, 4}, seen)
	require.Equal(t, "[3 2 4]", s.String())
}

func TestSet_Eq(t *testing.T) {
	a := NewSet("a", "b", "c")
	b := NewSet("c", "b", "a")

	require.True(t, a.Eq(b))
	require.True(t, b.Eq(a))
	require.True(t, a.EqValues("b", "a", "c"))
	require.False(t, a.EqValues("a", "b"))
	require.False(t, a.EqValues("a", "b", "d"))
}

func TestSet_FilterCopy(t *testing.T) {
	s := NewSet(1, 2, 3, 4)

	even := s.Filter(func(v int) bool { return v%2 == 0 })
	require.Equal(t, []int{2, 4}, even.Values())

	c := s.Copy()
	c.Remove(1)
	require.True(t, s.Contains(1))
	require.False(t, c.Contains(1))
}
