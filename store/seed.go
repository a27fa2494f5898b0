package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/semka95/repositories/backend/domain"
)

// Seed inserts data in store for development purposes
func Seed(ctx context.Context, s domain.RepositoryStore) error {
	repos := []*domain.Repository{
		{
			Title: "Desafio Node.js",
			URL:   "https://github.com/Rocketseat/bootcamp-gostack-desafios",
			Techs: []string{"Node.js", "Express"},
		},
		{
			Title: "echo",
			URL:   "https://github.com/labstack/echo",
			Techs: []string{"Go", "HTTP"},
		},
		{
			Title: "zap",
			URL:   "https://github.com/uber-go/zap",
			Techs: []string{"Go", "Logging"},
		},
		{
			Title: "validator",
			URL:   "https://github.com/go-playground/validator",
			Techs: []string{"Go"},
		},
	}

	for _, r := range repos {
		r.ID = uuid.NewString()
		if err := s.Store(ctx, r); err != nil {
			return err
		}
	}

	return nil
}
