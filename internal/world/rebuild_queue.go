package world

// rebuildQueue is a FIFO of chunks awaiting a mesh rebuild. A chunk is queued
// at most once; Chunk.queued tracks membership.
type rebuildQueue struct {
	items []*Chunk
	head  int
}

func (q *rebuildQueue) push(ch *Chunk) bool {
	if ch.queued {
		return false
	}
	ch.queued = true
	q.items = append(q.items, ch)
	return true
}

func (q *rebuildQueue) pop() *Chunk {
	if q.head >= len(q.items) {
		return nil
	}
	ch := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	// compact once the consumed prefix dominates
	if q.head > 64 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	ch.queued = false
	return ch
}

func (q *rebuildQueue) len() int {
	return len(q.items) - q.head
}
