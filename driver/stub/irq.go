//go:build !tinygo && !baremetal

package stub

// maxReentry bounds back-to-back handler runs for one line. On silicon a
// handler that never clears its source spins forever.
const maxReentry = 64

// IRQLine is one interrupt controller line. While the line is enabled and
// its peripheral requests service, the bound handler runs on the goroutine
// that raised the request, preempting whatever foreground code caused it.
// A line never re-enters its own handler.
type IRQLine struct {
	b          *Board
	name       string
	enabled    bool
	active     bool
	handler    func()
	entries    int
	requesting func() bool // called with b.mu held
}

func newIRQLine(b *Board, name string, requesting func() bool) *IRQLine {
	return &IRQLine{b: b, name: name, requesting: requesting}
}

// Bind installs the interrupt entry point, like a vector table slot.
func (l *IRQLine) Bind(handler func()) {
	l.b.mu.Lock()
	l.handler = handler
	l.b.mu.Unlock()
	l.service()
}

func (l *IRQLine) Enable() {
	l.b.mu.Lock()
	l.enabled = true
	l.b.mu.Unlock()
	l.service()
}

func (l *IRQLine) Disable() {
	l.b.mu.Lock()
	l.enabled = false
	l.b.mu.Unlock()
}

func (l *IRQLine) Enabled() bool {
	l.b.mu.Lock()
	defer l.b.mu.Unlock()
	return l.enabled
}

// Entries counts handler invocations since the board was created.
func (l *IRQLine) Entries() int {
	l.b.mu.Lock()
	defer l.b.mu.Unlock()
	return l.entries
}

func (l *IRQLine) readyLocked() bool {
	return l.enabled && !l.active && l.handler != nil && l.requesting()
}

func (l *IRQLine) service() {
	l.b.mu.Lock()
	if !l.readyLocked() {
		l.b.mu.Unlock()
		return
	}
	l.active = true
	h := l.handler
	for n := 0; ; n++ {
		l.entries++
		l.b.recordLocked(l.name, "irq")
		l.b.mu.Unlock()
		h()
		l.b.mu.Lock()
		l.active = false
		if n+1 >= maxReentry || !l.readyLocked() {
			break
		}
		l.active = true
	}
	l.b.mu.Unlock()
}
