package triage

// SwipeThresholdDivisor sets the swipe threshold at 1/5 (20%) of the viewport
// width.
const SwipeThresholdDivisor = 5

// ResolveGesture maps a horizontal drag to a decision. A drag shorter than
// the threshold snaps back and yields ok=false. The comparison scales the
// drag instead of dividing the width so a drag of exactly width/5 counts.
func ResolveGesture(deltaX, viewportWidth float64) (d Direction, ok bool) {
	if viewportWidth <= 0 {
		return Reject, false
	}
	scaled := deltaX * SwipeThresholdDivisor
	switch {
	case scaled >= viewportWidth:
		return Accept, true
	case scaled <= -viewportWidth:
		return Reject, true
	}
	return Reject, false
}
