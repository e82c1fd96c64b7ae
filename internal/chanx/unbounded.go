// Package chanx provides channel helpers for the counting pipeline.
package chanx

// Unbounded is a multi-producer, single-consumer channel whose sends never
// block on a slow consumer. Values are queued in memory until received.
//
// Producers send on In and the owner closes In once every producer is done.
// Out is closed after the last queued value has been received.
type Unbounded[T any] struct {
	in  chan T
	out chan T
}

// NewUnbounded starts the forwarding goroutine and returns the channel pair.
func NewUnbounded[T any]() *Unbounded[T] {
	u := &Unbounded[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go u.forward()
	return u
}

// In returns the send side.
func (u *Unbounded[T]) In() chan<- T {
	return u.in
}

// Out returns the receive side.
func (u *Unbounded[T]) Out() <-chan T {
	return u.out
}

func (u *Unbounded[T]) forward() {
	defer close(u.out)

	var queue []T
	in := u.in
	for in != nil || len(queue) > 0 {
		// out stays nil while the queue is empty so the select only waits on in.
		var out chan T
		var next T
		if len(queue) > 0 {
			out = u.out
			next = queue[0]
		}

		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			queue = append(queue, v)
		case out <- next:
			var zero T
			queue[0] = zero
			queue = queue[1:]
		}
	}
}

// Drain reads and discards all values from ch until it is closed.
func Drain[T any](ch <-chan T) {
	for range ch {
	}
}
