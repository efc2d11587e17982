package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/traderfmt/output"
)

// TimingCollector records operations as a tree of timers: a Start while
// another timer runs becomes a child of that timer.
type TimingCollector struct {
	mu      sync.Mutex
	root    *timerNode
	current *timerNode
}

// timerNode is a single timed operation in the tree.
type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *timerNode
	children []*timerNode
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}

	if c.root == nil {
		c.root = node
	} else {
		node.parent = c.current
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{collector: c, node: node}
}

// Report outputs the timing tree to a writer.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}
	formatTimingTree(w, c.root, styles)
}

// timingTimer records into a TimingCollector.
type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

// End stops the timer and makes its parent the running operation again.
func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if t.node.end.IsZero() {
		t.node.end = time.Now()
	}
	if t.collector.current == t.node {
		t.collector.current = t.node.parent
		if t.collector.current == nil {
			t.collector.current = t.collector.root
		}
	}
}
