package mule

// Progress is a point-in-time snapshot of a running download.
type Progress struct {
	// Offset is the number of bytes persisted to disk.
	Offset int64
	// Total is the expected file size, negative when the server declared none.
	Total int64
	// Rate is the instantaneous speed in bytes per second,
	// measured since the previous snapshot.
	Rate int64
}

// Notifier receives progress snapshots during Run. Notify is called from a
// dedicated goroutine; a notifier that cannot keep up misses snapshots
// instead of slowing the transfer down.
type Notifier interface {
	Notify(Progress)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Progress)

// Notify calls f(p).
func (f NotifierFunc) Notify(p Progress) { f(p) }

// asyncNotifier decouples the transfer loop from the notifier.
// Sends drop when the buffer is full so reporting can never block the transfer.
type asyncNotifier struct {
	c     chan Progress
	doneC chan struct{}
}

func newAsyncNotifier(n Notifier) *asyncNotifier {
	a := &asyncNotifier{
		c:     make(chan Progress, 1),
		doneC: make(chan struct{}),
	}
	go func() {
		defer close(a.doneC)
		for p := range a.c {
			n.Notify(p)
		}
	}()
	return a
}

func (a *asyncNotifier) send(p Progress) {
	select {
	case a.c <- p:
	default:
	}
}

func (a *asyncNotifier) stop() {
	close(a.c)
	<-a.doneC
}
