package itinerary_models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/shared_models"
	"github.com/transport-senegal/api/utils/shared_utils"
)

const (
	SourceAI     = "ai"
	SourceManual = "manual"
)

var ErrItineraryNotFound = errors.New("itinerary not found")

// Day is one day of a multi-day tour.
type Day struct {
	Day         int      `json:"day" binding:"required,min=1,max=60"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description,omitempty" binding:"max=4000"`
	Places      []string `json:"places,omitempty" binding:"max=30,dive,max=120"`
}

// Itinerary is a saved tour plan, usually produced by the travel advisor.
type Itinerary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CustomerName  string    `json:"customerName,omitempty"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	Days          []Day     `json:"days"`
	Notes         string    `json:"notes,omitempty"`
	Source        string    `json:"source"`
	Persisted     bool      `json:"persisted"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SaveItineraryRequest is the POST body.
type SaveItineraryRequest struct {
	Title         string `json:"title" binding:"required,max=200"`
	CustomerName  string `json:"customerName" binding:"max=100"`
	CustomerEmail string `json:"customerEmail" binding:"omitempty,email,max=254"`
	Days          []Day  `json:"days" binding:"required,min=1,max=60,dive"`
	Notes         string `json:"notes" binding:"max=4000"`
	Source        string `json:"source" binding:"omitempty,oneof=ai manual"`
}

// ToItinerary builds an unsaved itinerary.
func (r SaveItineraryRequest) ToItinerary() *Itinerary {
	source := r.Source
	if source == "" {
		source = SourceManual
	}
	days := make([]Day, len(r.Days))
	copy(days, r.Days)
	return &Itinerary{
		Title:         r.Title,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Days:          days,
		Notes:         r.Notes,
		Source:        source,
	}
}

// Store saves itineraries to Postgres when available and keeps them in
// memory otherwise.
type Store struct {
	db     shared_models.DBTX
	mu     sync.RWMutex
	memory map[string]Itinerary
	order  []string
}

// NewStore accepts a nil db for memory-only operation.
func NewStore(db shared_models.DBTX) *Store {
	return &Store{db: db, memory: map[string]Itinerary{}}
}

// Save assigns an id and stores it. It only fails if no id can be generated.
func (s *Store) Save(ctx context.Context, it *Itinerary) error {
	it.CreatedAt = time.Now().UTC()

	if s.db != nil {
		it.ID = shared_models.GenerateUUIDv7().String()
		saveCtx, cancel := context.WithTimeout(ctx, shared_models.PersistTimeout)
		err := insertItinerary(saveCtx, s.db, it)
		cancel()
		if err == nil {
			it.Persisted = true
			logger.InfoLogger.Infof("Itinerary %s saved (%d days)", it.ID, len(it.Days))
			return nil
		}
		logger.WarnLogger.Warnf("Itinerary kept in memory: %v", err)
	}

	tiny, err := shared_utils.GenerateTinyID(10)
	if err != nil {
		return fmt.Errorf("failed to generate itinerary id: %w", err)
	}
	it.ID = shared_models.LocalIDPrefix + tiny
	it.Persisted = false
	s.remember(*it)
	return nil
}

// Find checks the database first and then memory.
func (s *Store) Find(ctx context.Context, id string) (*Itinerary, error) {
	if s.db != nil {
		it, err := getItinerary(ctx, s.db, id)
		if err == nil {
			return it, nil
		}
		if !errors.Is(err, ErrItineraryNotFound) {
			logger.WarnLogger.Warnf("Itinerary lookup %s failed on database: %v", id, err)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.memory[id]
	if !ok {
		return nil, ErrItineraryNotFound
	}
	it.Days = append([]Day(nil), it.Days...)
	return &it, nil
}

func (s *Store) remember(it Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory[it.ID] = it
	s.order = append(s.order, it.ID)
	for len(s.order) > shared_models.MemoryCapacity {
		delete(s.memory, s.order[0])
		s.order = s.order[1:]
	}
}

func insertItinerary(ctx context.Context, db shared_models.DBTX, it *Itinerary) error {
	days, err := json.Marshal(it.Days)
	if err != nil {
		return fmt.Errorf("failed to encode itinerary days: %w", err)
	}

	query := `
		INSERT INTO itineraries (id, title, customer_name, customer_email, days, notes, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := db.Exec(ctx, query,
		it.ID, it.Title, it.CustomerName, it.CustomerEmail, days, it.Notes, it.Source, it.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return nil
}

func getItinerary(ctx context.Context, db shared_models.DBTX, id string) (*Itinerary, error) {
	var (
		it                 Itinerary
		days               []byte
		name, email, notes *string
	)
	query := `
		SELECT id, title, customer_name, customer_email, days, notes, source, created_at
		FROM itineraries
		WHERE id = $1`

	err := db.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Title, &name, &email, &days, &notes, &it.Source, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItineraryNotFound
		}
		return nil, fmt.Errorf("failed to fetch itinerary %s: %w", id, err)
	}
	if err := json.Unmarshal(days, &it.Days); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary days: %w", err)
	}
	it.CustomerName, it.CustomerEmail, it.Notes = deref(name), deref(email), deref(notes)
	it.Persisted = true
	return &it, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
