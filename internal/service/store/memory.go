package store

import (
	"sync"
	"time"

	"profitlogic/internal/model"
)

// HistoryUpload metadata for the currently loaded sales log
type HistoryUpload struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Snapshot read-only view of the session state
type Snapshot struct {
	Config     model.PricingConfig
	DealerTurn map[model.ModelKey]float64
	Summary    *model.SalesSummary
	Upload     *HistoryUpload
}

// SessionStore in-memory session state: pricing config and dealer history.
// Writers swap whole values so snapshots never see a partial upload.
type SessionStore struct {
	config     model.PricingConfig
	dealerTurn map[model.ModelKey]float64
	summary    *model.SalesSummary
	upload     *HistoryUpload
	mu         sync.RWMutex
}

// NewSessionStore creates an empty session with the given pricing config
func NewSessionStore(cfg model.PricingConfig) *SessionStore {
	return &SessionStore{
		config:     cfg,
		dealerTurn: map[model.ModelKey]float64{},
	}
}

// GetPricingConfig current pricing config
func (s *SessionStore) GetPricingConfig() model.PricingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetPricingConfig replaces the pricing config
func (s *SessionStore) SetPricingConfig(cfg model.PricingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// ReplaceHistory installs a new dealer history, discarding the previous one
func (s *SessionStore) ReplaceHistory(summary *model.SalesSummary, upload HistoryUpload) {
	turn := summary.TurnTable()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dealerTurn = turn
	s.summary = summary
	s.upload = &upload
}

// ClearHistory drops dealer data; lookups fall back to industry defaults
func (s *SessionStore) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dealerTurn = map[model.ModelKey]float64{}
	s.summary = nil
	s.upload = nil
}

// Summary sales summary of the loaded history, nil when none
func (s *SessionStore) Summary() *model.SalesSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Snapshot consistent view for one pricing pass
func (s *SessionStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Config:     s.config,
		DealerTurn: s.dealerTurn,
		Summary:    s.summary,
		Upload:     s.upload,
	}
}

// DealerTurnTable dealer-historical turn table captured by the snapshot.
// The map is never mutated after install and must not be written to.
func (s Snapshot) DealerTurnTable() map[model.ModelKey]float64 {
	return s.DealerTurn
}

// DealerModelCount number of make/models with dealer turn data
func (s Snapshot) DealerModelCount() int {
	return len(s.DealerTurn)
}
