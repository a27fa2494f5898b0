package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=../repository/mock/mock_repository.go -package=mock

// Repository represents the Repository model
type Repository struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Techs []string `json:"techs"`
	Likes int      `json:"likes"`
}

// Copy returns a deep copy of the repository, techs included
func (r *Repository) Copy() *Repository {
	cp := *r
	if r.Techs != nil {
		cp.Techs = make([]string, len(r.Techs))
		copy(cp.Techs, r.Techs)
	}
	return &cp
}

// CreateRepository represents data to create new Repository
type CreateRepository struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Techs []string `json:"techs"`
}

// UpdateRepository represents data to update Repository
type UpdateRepository struct {
	ID    string   `json:"-"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Techs []string `json:"techs"`
}

// StoreStats represents aggregated store counters
type StoreStats struct {
	Repositories int `json:"repositories"`
	Likes        int `json:"likes"`
}

// RepositoryUsecase represents the Repository's usecases
type RepositoryUsecase interface {
	Fetch(ctx context.Context) ([]*Repository, error)
	GetByID(ctx context.Context, id string) (*Repository, error)
	Store(ctx context.Context, createRepo CreateRepository) (*Repository, error)
	Update(ctx context.Context, updateRepo UpdateRepository) (*Repository, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (*Repository, error)
}

// RepositoryStore represents the Repository's storage contract.
// Implementations must be safe for concurrent use and keep insertion order.
type RepositoryStore interface {
	Fetch(ctx context.Context) ([]*Repository, error)
	GetByID(ctx context.Context, id string) (*Repository, error)
	Store(ctx context.Context, r *Repository) error
	// Update replaces title, url and techs only.
	Update(ctx context.Context, updateRepo UpdateRepository) (*Repository, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (*Repository, error)
	Stats(ctx context.Context) (StoreStats, error)
}

// ValidID reports whether id has the canonical textual UUID form
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx produced by uuid.NewString.
// Version and variant digits are not checked.
func ValidID(id string) bool {
	// uuid.Parse also accepts urn, braced and undashed forms
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
