package ordered

import (
	"reflect"
	"testing"
)

func TestSet_PreservesInsertionOrder(t *testing.T) {
	s := NewSet("b", "a", "c")

	if got, want := s.Values(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
}

func TestSet_AddIsIdempotent(t *testing.T) {
	s := NewSet[string]()

	if !s.Add("x") {
		t.Fatalf("first Add(x) should report a new element")
	}

	if s.Add("x") {
		t.Fatalf("second Add(x) should report an existing element")
	}

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestSet_ReAddKeepsOriginalPosition(t *testing.T) {
	s := NewSet("a", "b")
	s.Add("a")

	if got, want := s.Values(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
}

func TestSet_RemoveAndClear(t *testing.T) {
	s := NewSet("a", "b", "c")

	if !s.Remove("b") {
		t.Fatalf("Remove(b) should report presence")
	}

	if s.Remove("b") {
		t.Fatalf("second Remove(b) should report absence")
	}

	if got, want := s.Values(), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}

	s.Clear()

	if s.Len() != 0 {
		t.Fatalf("Len() after Clear() = %d, want 0", s.Len())
	}
}

func TestMap_GetOrCreate(t *testing.T) {
	m := NewMap[string, *Set[string]]()

	first := m.GetOrCreate("pkg", func() *Set[string] { return NewSet[string]() })
	first.Add("modA")

	second := m.GetOrCreate("pkg", func() *Set[string] { return NewSet[string]() })

	if first != second {
		t.Fatalf("GetOrCreate should return the existing value")
	}

	if !second.Contains("modA") {
		t.Fatalf("existing value lost its content")
	}
}

func TestMap_KeysInsertionOrder(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("z", 1)
	m.Set("a", 2)
	m.Set("z", 3)

	if got, want := m.Keys(), []string{"z", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}

	if v, _ := m.Get("z"); v != 3 {
		t.Fatalf("Get(z) = %d, want 3", v)
	}
}
