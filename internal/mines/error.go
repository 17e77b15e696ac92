package mines

// AssertionError is the panic value for calls that break a precondition of
// the game, such as a cell index outside the grid.
type AssertionError struct {
	message string
}

func (e AssertionError) Error() string {
	return "mines: assertion failed: " + e.message
}
