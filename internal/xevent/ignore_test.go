package xevent

import "testing"

func TestIgnoreListMatchesRecordedSequence(t *testing.T) {
	l := NewIgnoreList()
	l.Push(5)
	l.Push(9)
	if !l.ShouldIgnore(5) {
		t.Fatalf("expected 5 to be ignored")
	}
	if l.ShouldIgnore(5) {
		t.Fatalf("expected 5 to be consumed after first match")
	}
}

func TestIgnoreListDropsStaleEntries(t *testing.T) {
	l := NewIgnoreList()
	l.Push(3)
	l.Push(4)
	if l.ShouldIgnore(6) {
		t.Fatalf("6 was never pushed and should not match")
	}
	if len(l.seqs) != 0 {
		t.Fatalf("expected stale entries dropped, got %v", l.seqs)
	}
}

func TestIgnoreListUnmatchedSequenceNotIgnored(t *testing.T) {
	l := NewIgnoreList()
	l.Push(100)
	if l.ShouldIgnore(50) {
		t.Fatalf("50 precedes the only recorded entry and should not match")
	}
}

func TestSeqLessWrapsAt16Bits(t *testing.T) {
	if !seqLess(65535, 0) {
		t.Fatalf("expected wraparound: 65535 < 0")
	}
	if seqLess(0, 65535) {
		t.Fatalf("expected wraparound: 0 is not < 65535")
	}
}
