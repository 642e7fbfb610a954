package ecs

import "testing"

func TestAllocateDensifies(t *testing.T) {
	s := NewStore()
	a := s.Allocate()
	b := s.Allocate()
	c := s.Allocate()
	s.Remove(b)
	d := s.Allocate()
	if d != b {
		t.Errorf("expected freed slot %d reused, got %d", b, d)
	}
	if !s.Alive(a) || !s.Alive(c) || !s.Alive(d) {
		t.Errorf("expected a, c, d alive")
	}
}

func TestAllocateReusesLowestFreeID(t *testing.T) {
	s := NewStore()
	a := s.Allocate()
	b := s.Allocate()
	c := s.Allocate()
	s.Remove(a)
	s.Remove(b)
	next := s.Allocate()
	if next != a {
		t.Errorf("expected lowest freed id %d reused first, got %d", a, next)
	}
	second := s.Allocate()
	if second != b {
		t.Errorf("expected next-lowest freed id %d reused second, got %d", b, second)
	}
	if !s.Alive(c) {
		t.Errorf("expected c still alive")
	}
}

func TestRemoveClearsAllComponents(t *testing.T) {
	s := NewStore()
	id := s.Allocate()
	s.SetMud(id, MudComponent{Name: "x"})
	s.Set(id, Redirected)
	s.Remove(id)
	if s.Alive(id) {
		t.Errorf("expected id dead after remove")
	}
	if s.Has(id, Mud) || s.Has(id, Redirected) {
		t.Errorf("expected all components cleared after remove")
	}
}

func TestQueryWithWithout(t *testing.T) {
	s := NewStore()
	a := s.Allocate()
	b := s.Allocate()
	c := s.Allocate()
	s.Set(a, Redirected)
	s.Set(b, Redirected)
	s.Set(b, Bypass)
	s.Set(c, Bypass)

	got := NewQuery(s, Redirected).Without(Bypass).Collect()
	if len(got) != 1 || got[0] != a {
		t.Errorf("expected only %d, got %v", a, got)
	}
}

func TestQueryAcrossManyBuckets(t *testing.T) {
	s := NewStore()
	var ids []ID
	for i := 0; i < 200; i++ {
		id := s.Allocate()
		ids = append(ids, id)
		if i%3 == 0 {
			s.Set(id, Redirected)
		}
	}
	got := NewQuery(s, Redirected).Collect()
	want := 0
	for i := range ids {
		if i%3 == 0 {
			want++
		}
	}
	if len(got) != want {
		t.Errorf("expected %d matches across buckets, got %d", want, len(got))
	}
	for i, id := range got {
		if i > 0 && id <= got[i-1] {
			t.Errorf("expected ascending id order, got %v", got)
		}
	}
}

func TestQueryStabilityUnderRemovalDuringIteration(t *testing.T) {
	s := NewStore()
	var ids []ID
	for i := 0; i < 5; i++ {
		id := s.Allocate()
		s.Set(id, Redirected)
		ids = append(ids, id)
	}
	visited := map[ID]bool{}
	NewQuery(s, Redirected).Each(func(id ID) {
		visited[id] = true
		if id == ids[1] {
			// remove a later, not-yet-visited id mid-iteration
			s.Clear(ids[3], Redirected)
		}
	})
	if visited[ids[3]] {
		t.Errorf("expected id removed mid-iteration to be skipped, got visited")
	}
	for _, id := range []ID{ids[0], ids[1], ids[2], ids[4]} {
		if !visited[id] {
			t.Errorf("expected id %d visited", id)
		}
	}
}

func TestSetWhereRemoveWhereEnsureWhere(t *testing.T) {
	s := NewStore()
	var ids []ID
	for i := 0; i < 10; i++ {
		id := s.Allocate()
		ids = append(ids, id)
		if i%2 == 0 {
			s.Set(id, Redirected)
		}
	}
	s.SetWhere(Bypass, NewQuery(s, Redirected))
	for i, id := range ids {
		if i%2 == 0 && !s.Has(id, Bypass) {
			t.Errorf("id %d expected Bypass set", id)
		}
		if i%2 != 0 && s.Has(id, Bypass) {
			t.Errorf("id %d unexpected Bypass set", id)
		}
	}
	s.RemoveWhere(Bypass, NewQuery(s, Redirected))
	if s.CountKind(Bypass) != 0 {
		t.Errorf("expected RemoveWhere to clear all Bypass bits")
	}
	s.EnsureWhere(Bypass, NewQuery(s, Redirected))
	if s.CountKind(Bypass) != s.CountKind(Redirected) {
		t.Errorf("expected EnsureWhere to set Bypass on every Redirected entity")
	}
}

func TestCountHoles(t *testing.T) {
	s := NewStore()
	a := s.Allocate()
	_ = a
	b := s.Allocate()
	s.Allocate()
	s.Remove(b)
	if got := s.CountHoles(); got != 1 {
		t.Errorf("CountHoles() = %d, want 1", got)
	}
}

func TestCountWhereMatchesCollectLength(t *testing.T) {
	s := NewStore()
	for i := 0; i < 130; i++ {
		id := s.Allocate()
		if i%2 == 0 {
			s.Set(id, Bypass)
		}
	}
	if got, want := s.CountWhere(NewQuery(s, Bypass)), len(NewQuery(s, Bypass).Collect()); got != want {
		t.Errorf("CountWhere=%d, Collect length=%d", got, want)
	}
	if got, want := s.CountKind(Bypass), len(NewQuery(s, Bypass).Collect()); got != want {
		t.Errorf("CountKind=%d, Collect length=%d", got, want)
	}
}
