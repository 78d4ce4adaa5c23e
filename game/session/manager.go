package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchAlreadyExists = errors.New("match already exists")
	ErrMatchFinished      = errors.New("match already finished")
)

// Manager handles match record lifecycle
type Manager struct {
	matches     map[string]*MatchRecord
	persistence MatchPersistence
	mu          sync.RWMutex
}

// NewManager creates a match manager without persistence
func NewManager() *Manager {
	return &Manager{
		matches: make(map[string]*MatchRecord),
	}
}

// NewManagerWithPersistence creates a match manager backed by storage
func NewManagerWithPersistence(persistence MatchPersistence) *Manager {
	return &Manager{
		matches:     make(map[string]*MatchRecord),
		persistence: persistence,
	}
}

// Begin opens a new match record. An empty ID gets a generated one.
func (m *Manager) Begin(id, configName string, myPlayerID int) (*MatchRecord, error) {
	if id == "" {
		id = m.generateMatchID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.matches[id]; exists {
		return nil, ErrMatchAlreadyExists
	}

	record := &MatchRecord{
		ID:         id,
		ConfigName: configName,
		MyPlayerID: myPlayerID,
		Result:     ResultUnknown,
		StartedAt:  time.Now(),
	}
	m.matches[id] = record

	if m.persistence != nil {
		if err := m.persistence.Save(record); err != nil {
			// Recording must not block the match itself.
			log.Printf("session: failed to persist match %s: %v", id, err)
		}
	}

	return record, nil
}

// RecordTurn appends one turn's decision trace to an open match
func (m *Manager) RecordTurn(id string, result *service.TurnResult) error {
	if result == nil {
		return fmt.Errorf("turn result cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.matches[id]
	if !exists {
		return ErrMatchNotFound
	}
	if record.Finished() {
		return ErrMatchFinished
	}

	record.Turns = append(record.Turns, turnRecordFrom(result))
	return nil
}

// RecordOutcome annotates the most recent turn of an open match. Annotating
// a match with no turns yet is a no-op.
func (m *Manager) RecordOutcome(id string, outcome blackboard.Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.matches[id]
	if !exists {
		return ErrMatchNotFound
	}
	if len(record.Turns) == 0 {
		return nil
	}
	record.Turns[len(record.Turns)-1].Outcome = outcome
	return nil
}

// Finish closes a match with its final result and persists it
func (m *Manager) Finish(id string, result MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.matches[id]
	if !exists {
		return ErrMatchNotFound
	}

	record.Result = result
	record.FinishedAt = time.Now()

	if m.persistence != nil {
		if err := m.persistence.Save(record); err != nil {
			return fmt.Errorf("failed to persist finished match: %w", err)
		}
	}
	return nil
}

// Get retrieves a match record by ID, falling back to persistence when the
// record is not in memory
func (m *Manager) Get(id string) (*MatchRecord, error) {
	m.mu.RLock()
	record, exists := m.matches[id]
	m.mu.RUnlock()

	if exists {
		return record, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		record, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted match: %w", err)
		}

		m.mu.Lock()
		m.matches[id] = record
		m.mu.Unlock()

		return record, nil
	}

	return nil, ErrMatchNotFound
}

// List returns all in-memory match records
func (m *Manager) List() []*MatchRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*MatchRecord, 0, len(m.matches))
	for _, record := range m.matches {
		result = append(result, record)
	}
	return result
}

// Delete removes a match record from memory and storage
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.matches[id]
	delete(m.matches, id)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted match: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrMatchNotFound
	}
	return nil
}

// Count returns the number of in-memory match records
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

// Save persists a specific match record
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	record, exists := m.matches[id]
	m.mu.RUnlock()

	if !exists {
		return ErrMatchNotFound
	}
	return m.persistence.Save(record)
}

// LoadPersistedMatches loads all persisted match records into memory
func (m *Manager) LoadPersistedMatches() error {
	if m.persistence == nil {
		return nil
	}

	matchIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted matches: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range matchIDs {
		if _, exists := m.matches[id]; exists {
			continue
		}

		record, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("session: failed to load persisted match %s: %v", id, err)
			continue
		}
		m.matches[id] = record
	}

	return nil
}

// SaveAll persists every in-memory match record
func (m *Manager) SaveAll() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	records := make([]*MatchRecord, 0, len(m.matches))
	for _, record := range m.matches {
		records = append(records, record)
	}
	m.mu.RUnlock()

	errorCount := 0
	for _, record := range records {
		if err := m.persistence.Save(record); err != nil {
			log.Printf("session: failed to save match %s: %v", record.ID, err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d matches", errorCount)
	}
	return nil
}

// generateMatchID generates a random 8-character match ID
func (m *Manager) generateMatchID() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
