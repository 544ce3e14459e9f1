package world

// dirtyQueue keeps chunk slots in the order they became dirty. A slot is
// queued at most once; entries whose flag has since been cleared are dropped
// on compact.
type dirtyQueue struct {
	order  []int
	queued []bool
}

func (q *dirtyQueue) init(n int) {
	q.order = make([]int, 0, n)
	q.queued = make([]bool, n)
}

func (q *dirtyQueue) push(i int) {
	if q.queued[i] {
		return
	}
	q.queued[i] = true
	q.order = append(q.order, i)
}

// compact drops clean slots and returns the remaining order. The returned
// slice is only valid until the next push.
func (q *dirtyQueue) compact(dirty []bool) []int {
	kept := q.order[:0]
	for _, i := range q.order {
		if dirty[i] {
			kept = append(kept, i)
		} else {
			q.queued[i] = false
		}
	}
	q.order = kept
	return kept
}
