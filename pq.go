package dijkstra

import "container/heap"

type PriorityQueueItem struct {
	Cell         Cell
	Handle       int
	Cost         float64
	Seq          int
	IndexInQueue int
}

// PriorityQueue orders by cost, then by sequence number so equal-cost
// entries leave in creation order.
type PriorityQueue []*PriorityQueueItem

func (queue PriorityQueue) Len() int { return len(queue) }
func (queue PriorityQueue) Less(i, j int) bool {
	if queue[i].Cost != queue[j].Cost {
		return queue[i].Cost < queue[j].Cost
	}
	return queue[i].Seq < queue[j].Seq
}
func (queue PriorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *PriorityQueue) Push(x any) {
	item := x.(*PriorityQueueItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *PriorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// frontier is the open set: a heap plus a Cell index so membership and
// decrease-key never scan the queue.
type frontier struct {
	queue PriorityQueue
	index map[Cell]*PriorityQueueItem
}

func newFrontier() *frontier {
	return &frontier{
		queue: make(PriorityQueue, 0, 64),
		index: make(map[Cell]*PriorityQueueItem),
	}
}

func (f *frontier) Len() int { return f.queue.Len() }

// push inserts a cell that is not already present.
func (f *frontier) push(n Node, handle int) {
	item := &PriorityQueueItem{Cell: n.Cell, Handle: handle, Cost: n.Cost, Seq: n.Seq}
	heap.Push(&f.queue, item)
	f.index[n.Cell] = item
}

func (f *frontier) popMin() *PriorityQueueItem {
	item := heap.Pop(&f.queue).(*PriorityQueueItem)
	delete(f.index, item.Cell)
	return item
}

// lookup returns the live entry for c, if any.
func (f *frontier) lookup(c Cell) (*PriorityQueueItem, bool) {
	item, ok := f.index[c]
	return item, ok
}

// replace swaps the stale entry for c with a cheaper node in O(log n).
func (f *frontier) replace(item *PriorityQueueItem, n Node, handle int) {
	item.Handle = handle
	item.Cost = n.Cost
	item.Seq = n.Seq
	heap.Fix(&f.queue, item.IndexInQueue)
}

func (f *frontier) cells() []Cell {
	out := make([]Cell, 0, len(f.queue))
	for _, item := range f.queue {
		out = append(out, item.Cell)
	}
	return out
}
