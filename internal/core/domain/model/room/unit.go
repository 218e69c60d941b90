package room

// Unit is a room produced by the room splitter before it is persisted as an Assignment.
type Unit struct {
	Type             Type
	Number           int
	Label            string
	EstimatedMinutes int
}

// TotalMinutes sums the estimated effort of a group of units.
func TotalMinutes(units []Unit) int {
	total := 0
	for _, u := range units {
		total += u.EstimatedMinutes
	}
	return total
}
