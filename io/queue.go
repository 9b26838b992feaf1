package io

// Queue is a first-in first-out buffer of values.
// It serves both as a preloaded Input and as a collecting Output.
type Queue struct {
	Counter

	Capacity int // Capacity in values, 0 for unbounded.

	Data []int64
}

var _ Input = (*Queue)(nil)
var _ Output = (*Queue)(nil)

// NewQueue creates an unbounded queue holding the values, in order.
func NewQueue(values ...int64) (queue *Queue) {
	queue = &Queue{}
	queue.Data = append(queue.Data, values...)
	return
}

// Len returns the number of values waiting in the queue.
func (queue *Queue) Len() int {
	return len(queue.Data)
}

// Push appends values to the back of the queue.
// Returns ErrChannelFull, without queueing anything, if the values do not fit.
func (queue *Queue) Push(values ...int64) (err error) {
	if queue.Capacity > 0 && len(queue.Data)+len(values) > queue.Capacity {
		err = ErrChannelFull
		return
	}

	queue.Data = append(queue.Data, values...)
	return
}

// Receive removes and returns the value at the front of the queue.
func (queue *Queue) Receive() (value int64, err error) {
	if len(queue.Data) == 0 {
		err = ErrInputExhausted
		return
	}

	value = queue.Data[0]
	queue.Data = queue.Data[1:]
	return
}

// Send appends a value to the back of the queue.
func (queue *Queue) Send(value int64) (err error) {
	err = queue.Push(value)
	if err != nil {
		return
	}

	queue.Tally()
	return
}

// Drain removes and returns every queued value.
func (queue *Queue) Drain() (values []int64) {
	values = queue.Data
	queue.Data = nil
	return
}

// Clone returns an independent copy of the queue.
func (queue *Queue) Clone() (dup *Queue) {
	dup = &Queue{
		Counter:  queue.Counter,
		Capacity: queue.Capacity,
	}
	dup.Data = append(dup.Data, queue.Data...)
	return
}

// Rewind empties the queue and zeros the sent counter.
func (queue *Queue) Rewind() {
	queue.Counter.Rewind()
	queue.Data = nil
}
