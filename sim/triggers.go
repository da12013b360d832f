package sim

// rollTriggered reports whether today's spot arms the roll. Only a position
// still held at its initial strike can roll, so the trigger fires once per run.
func rollTriggered(st State, spot, trigger float64) bool {
	if st.Phase != HeldAtInitialStrike {
		return false
	}
	return spot >= trigger
}
