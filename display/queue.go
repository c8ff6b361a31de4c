package display

import "container/heap"

// deferredUpdate is a redraw postponed because a scroll was active. Lower
// priority values are more urgent; ties break on enqueue order.
type deferredUpdate struct {
	priority int
	seq      uint64
	fn       func()
}

type updateQueue []deferredUpdate

func (q updateQueue) Len() int { return len(q) }

func (q updateQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q updateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *updateQueue) Push(x any) {
	*q = append(*q, x.(deferredUpdate))
}

func (q *updateQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1].fn = nil
	*q = old[:n-1]
	return item
}

func (q *updateQueue) push(u deferredUpdate) {
	heap.Push(q, u)
}

func (q *updateQueue) pop() (deferredUpdate, bool) {
	if q.Len() == 0 {
		return deferredUpdate{}, false
	}
	return heap.Pop(q).(deferredUpdate), true
}
