package ecs

// Query describes a bucket-at-a-time set operation over component
// presence bitsets: entities carrying every kind in with, and none of the
// kinds in without (§3, §4.2's evaluation strategy).
type Query struct {
	store   *Store
	with    []Kind
	without []Kind
}

// NewQuery starts a query against s requiring every kind in with.
func NewQuery(s *Store, with ...Kind) *Query {
	return &Query{store: s, with: with}
}

// Without excludes entities carrying any of the given kinds.
func (q *Query) Without(kinds ...Kind) *Query {
	q.without = append(q.without, kinds...)
	return q
}

// Iterator walks the entities matching a Query in ascending id order. Each
// bucket's presence word is re-folded (AND every "with" word, ANDNOT every
// "without" word) on every step and masked to exclude bit positions at or
// below the last-visited one in that bucket. So a later id's component
// change is visible the moment the iterator reaches its bucket, while an
// id already yielded is never folded back in even if its components change
// again afterward (§4.2's "later ids visible, earlier ids not revisited").
type Iterator struct {
	q         *Query
	bucket    int
	numBucket int
	bitInCur  int // one past the last bit position yielded in the current bucket
	curID     int
	ok        bool
}

// Iter returns a fresh iterator positioned before the first match.
func (q *Query) Iter() *Iterator {
	capacity := q.store.capacity
	return &Iterator{q: q, bucket: 0, numBucket: (capacity + bucketBits - 1) / bucketBits}
}

func (q *Query) foldBucket(bucket int) uint64 {
	word := q.store.presence[Meta].word(bucket)
	for _, k := range q.with {
		word &= q.store.presence[k].word(bucket)
	}
	for _, k := range q.without {
		word &^= q.store.presence[k].word(bucket)
	}
	return word
}

// Next advances the iterator and reports whether a match was found.
func (it *Iterator) Next() bool {
	for it.bucket < it.numBucket {
		word := it.q.foldBucket(it.bucket)
		if it.bitInCur > 0 {
			word &^= (uint64(1) << uint(it.bitInCur)) - 1
		}
		if idx, found := findFirstSet(word, 0); found {
			it.curID = it.bucket*bucketBits + idx
			it.bitInCur = idx + 1
			it.ok = true
			return true
		}
		it.bucket++
		it.bitInCur = 0
	}
	it.ok = false
	return false
}

// ID returns the entity id at the iterator's current position. Valid only
// immediately after Next returns true.
func (it *Iterator) ID() ID {
	return ID(it.curID)
}

// Each runs fn for every entity matching q, in ascending id order. fn may
// call Store.Remove on later, not-yet-visited ids (or on the current id)
// without disturbing ids that have already been yielded (§8
// Query-stability): removal clears bits in place, which only ever turns a
// future 1 into a 0, never the reverse, so no id is skipped and no id is
// visited twice.
func (q *Query) Each(fn func(ID)) {
	it := q.Iter()
	for it.Next() {
		fn(it.ID())
	}
}

// Count returns the number of entities matching q without allocating a
// slice of ids.
func (q *Query) Count() int {
	n := 0
	q.Each(func(ID) { n++ })
	return n
}

// Collect materializes every matching id into a slice, in ascending order.
func (q *Query) Collect() []ID {
	var out []ID
	q.Each(func(id ID) { out = append(out, id) })
	return out
}
