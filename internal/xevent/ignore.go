package xevent

// IgnoreList is a small FIFO of request sequence numbers used to silence
// expected BadWindow/BadDrawable errors from in-flight requests against
// windows destroyed before the reply arrives (§D, grounded on
// original_source/src/xorg.c's race-with-destroy suppression).
type IgnoreList struct {
	seqs []uint16
}

// NewIgnoreList returns an empty list.
func NewIgnoreList() *IgnoreList { return &IgnoreList{} }

// Push records seq as an expected-to-error request.
func (l *IgnoreList) Push(seq uint16) {
	l.seqs = append(l.seqs, seq)
}

// ShouldIgnore reports whether an error with the given sequence number is
// expected, consuming every recorded sequence number up to and including
// it — X delivers errors in sequence order, so anything older than seq
// that never errored is stale and can be dropped too.
func (l *IgnoreList) ShouldIgnore(seq uint16) bool {
	found := false
	i := 0
	for ; i < len(l.seqs); i++ {
		if l.seqs[i] == seq {
			found = true
			i++
			break
		}
		if seqLess(seq, l.seqs[i]) {
			break
		}
	}
	l.seqs = l.seqs[i:]
	return found
}

// seqLess compares two 16-bit wrapping sequence numbers the way X does.
func seqLess(a, b uint16) bool {
	return int16(a-b) < 0
}
