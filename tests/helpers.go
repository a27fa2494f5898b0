package tests

import (
	"github.com/semka95/repositories/backend/domain"
)

// TestID is a well-formed repository id used across tests
const TestID = "6f1c2b7e-3f4a-4c2d-9b8e-1a2b3c4d5e6f"

// NewRepository creates instance of Repository model
func NewRepository() *domain.Repository {
	return &domain.Repository{
		ID:    TestID,
		Title: "Desafio Node.js",
		URL:   "http://github.com/example/desafio",
		Techs: []string{"Node.js", "Express"},
		Likes: 0,
	}
}

// NewCreateRepository creates instance of CreateRepository model
func NewCreateRepository() domain.CreateRepository {
	return domain.CreateRepository{
		Title: "Desafio Node.js",
		URL:   "http://github.com/example/desafio",
		Techs: []string{"Node.js", "Express"},
	}
}

// NewUpdateRepository creates instance of UpdateRepository model
func NewUpdateRepository() domain.UpdateRepository {
	return domain.UpdateRepository{
		ID:    TestID,
		Title: "Desafio Go",
		URL:   "http://github.com/example/desafio-go",
		Techs: []string{"Go"},
	}
}
