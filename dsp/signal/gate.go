package signal

// Gate detects rising threshold crossings.
type Gate struct {
	threshold float64
	prev      float64
	open      bool
}

// NewGate returns a gate with the given threshold.
func NewGate(threshold float64) *Gate {
	return &Gate{threshold: threshold}
}

// SetThreshold changes the crossing level.
func (g *Gate) SetThreshold(v float64) { g.threshold = v }

// Threshold returns the crossing level.
func (g *Gate) Threshold() float64 { return g.threshold }

// Process reports whether the previous input was below the threshold and
// this one is at or above it.
func (g *Gate) Process(in float64) bool {
	g.open = g.prev < g.threshold && in >= g.threshold
	g.prev = in

	return g.open
}

// Open returns the result of the last Process call.
func (g *Gate) Open() bool { return g.open }

// Reset clears the input history.
func (g *Gate) Reset() {
	g.prev = 0
	g.open = false
}
