package storage

// NotFoundError is returned when a report doesn't exist in the store.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "report not found"
	}

	return "report not found: " + e.ID
}
