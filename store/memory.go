package store

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/semka95/repositories/backend/domain"
)

// Config stores in-memory store configuration
type Config struct {
	Seed bool `yaml:"seed"`
}

// MemoryStore keeps repositories in insertion order. All access goes through mu.
type MemoryStore struct {
	mu     sync.RWMutex
	repos  []*domain.Repository
	logger *zap.Logger
	tracer trace.Tracer
}

// NewMemoryStore will create an object that represent the domain.RepositoryStore interface
func NewMemoryStore(logger *zap.Logger, tracer trace.Tracer) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MemoryStore{
		repos:  make([]*domain.Repository, 0),
		logger: logger,
		tracer: tracer,
	}
}

// indexOf must be called with mu held.
func (m *MemoryStore) indexOf(id string) int {
	for i, r := range m.repos {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Fetch returns copies of all repositories in insertion order
func (m *MemoryStore) Fetch(ctx context.Context) ([]*domain.Repository, error) {
	_, span := m.tracer.Start(
		ctx,
		"store Fetch",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.Repository, 0, len(m.repos))
	for _, r := range m.repos {
		result = append(result, r.Copy())
	}

	span.SetAttributes(attribute.Int("count", len(result)))

	return result, nil
}

// GetByID returns a copy of the repository with given id
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Repository, error) {
	_, span := m.tracer.Start(
		ctx,
		"store GetByID",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", id)),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		span.RecordError(domain.ErrNotFound)
		return nil, fmt.Errorf("repository %s was not found: %w", id, domain.ErrNotFound)
	}

	return m.repos[i].Copy(), nil
}

// Store appends repository to the end of the sequence
func (m *MemoryStore) Store(ctx context.Context, r *domain.Repository) error {
	_, span := m.tracer.Start(
		ctx,
		"store Store",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", r.ID)),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return err
	}

	m.mu.Lock()
	m.repos = append(m.repos, r.Copy())
	m.mu.Unlock()

	m.logger.Debug("repository stored", zap.String("id", r.ID))

	return nil
}

// Update replaces title, url and techs of the matching repository, id and likes are kept
func (m *MemoryStore) Update(ctx context.Context, updateRepo domain.UpdateRepository) (*domain.Repository, error) {
	_, span := m.tracer.Start(
		ctx,
		"store Update",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", updateRepo.ID)),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	var techs []string
	if updateRepo.Techs != nil {
		techs = make([]string, len(updateRepo.Techs))
		copy(techs, updateRepo.Techs)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(updateRepo.ID)
	if i < 0 {
		span.RecordError(domain.ErrNotFound)
		return nil, fmt.Errorf("repository %s was not updated: %w", updateRepo.ID, domain.ErrNotFound)
	}

	r := m.repos[i]
	r.Title = updateRepo.Title
	r.URL = updateRepo.URL
	r.Techs = techs

	return r.Copy(), nil
}

// Delete removes the matching repository only, the rest keep their order
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	_, span := m.tracer.Start(
		ctx,
		"store Delete",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", id)),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		span.RecordError(domain.ErrNotFound)
		return fmt.Errorf("repository %s was not deleted: %w", id, domain.ErrNotFound)
	}

	copy(m.repos[i:], m.repos[i+1:])
	m.repos[len(m.repos)-1] = nil
	m.repos = m.repos[:len(m.repos)-1]

	m.logger.Debug("repository deleted", zap.String("id", id))

	return nil
}

// Like increments likes of the matching repository by one
func (m *MemoryStore) Like(ctx context.Context, id string) (*domain.Repository, error) {
	_, span := m.tracer.Start(
		ctx,
		"store Like",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", id)),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		span.RecordError(domain.ErrNotFound)
		return nil, fmt.Errorf("repository %s was not liked: %w", id, domain.ErrNotFound)
	}

	m.repos[i].Likes++

	return m.repos[i].Copy(), nil
}

// Stats returns number of repositories and total likes
func (m *MemoryStore) Stats(ctx context.Context) (domain.StoreStats, error) {
	_, span := m.tracer.Start(
		ctx,
		"store Stats",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return domain.StoreStats{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := domain.StoreStats{Repositories: len(m.repos)}
	for _, r := range m.repos {
		stats.Likes += r.Likes
	}

	return stats, nil
}
