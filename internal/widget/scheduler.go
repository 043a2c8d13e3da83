package widget

// Scheduler runs blocking work away from the UI loop. work returns a
// completion, which the scheduler must run back on the UI loop.
type Scheduler interface {
	Go(work func() func())
}

// Inline runs work and its completion on the caller's goroutine
type Inline struct{}

func (Inline) Go(work func() func()) {
	work()()
}
