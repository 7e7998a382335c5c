package quiz

// startJumpMsg positions the quiz on the deep-link question once the
// screen is active.
type startJumpMsg struct {
	QNum int
}
