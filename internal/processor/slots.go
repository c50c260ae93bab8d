package processor

import "context"

// upstreamSlots limits how many links talk to the model at once.
type upstreamSlots struct {
	ch chan struct{}
}

func newUpstreamSlots(n int) *upstreamSlots {
	if n <= 0 {
		n = 1
	}
	return &upstreamSlots{ch: make(chan struct{}, n)}
}

// take blocks until a slot frees up or ctx ends. The returned func gives the
// slot back and must be called exactly once.
func (s *upstreamSlots) take(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case s.ch <- struct{}{}:
		return func() { <-s.ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// busy reports whether every slot is taken.
func (s *upstreamSlots) busy() bool {
	return len(s.ch) == cap(s.ch)
}
