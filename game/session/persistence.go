package session

// MatchPersistence defines the interface for persisting match records
type MatchPersistence interface {
	// Save persists a match record to storage
	Save(record *MatchRecord) error

	// Load retrieves a match record from storage by ID
	Load(id string) (*MatchRecord, error)

	// Delete removes a match record from storage
	Delete(id string) error

	// ListAll returns all persisted match IDs
	ListAll() ([]string, error)

	// Exists checks if a match record exists in storage
	Exists(id string) bool
}
