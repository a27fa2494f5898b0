package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/semka95/repositories/backend/domain"
)

type repositoryUsecase struct {
	repoStore      domain.RepositoryStore
	contextTimeout time.Duration
	tracer         trace.Tracer
}

// NewRepositoryUsecase will create new a repositoryUsecase object representation of domain.RepositoryUsecase interface
func NewRepositoryUsecase(s domain.RepositoryStore, timeout time.Duration, tracer trace.Tracer) domain.RepositoryUsecase {
	return &repositoryUsecase{
		repoStore:      s,
		contextTimeout: timeout,
		tracer:         tracer,
	}
}

func (uc *repositoryUsecase) Fetch(c context.Context) ([]*domain.Repository, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Fetch",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	list, err := uc.repoStore.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return list, nil
}

func (uc *repositoryUsecase) GetByID(c context.Context, id string) (*domain.Repository, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase GetByID",
		trace.WithAttributes(
			attribute.String("repoid", id)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	r, err := uc.repoStore.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return r, nil
}

func (uc *repositoryUsecase) Store(c context.Context, createRepo domain.CreateRepository) (*domain.Repository, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Store",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	r := &domain.Repository{
		ID:    uuid.NewString(),
		Title: createRepo.Title,
		URL:   createRepo.URL,
		Techs: createRepo.Techs,
		Likes: 0,
	}
	span.SetAttributes(attribute.String("repoid", r.ID))

	err := uc.repoStore.Store(ctx, r)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return r, nil
}

func (uc *repositoryUsecase) Update(c context.Context, updateRepo domain.UpdateRepository) (*domain.Repository, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Update",
		trace.WithAttributes(
			attribute.String("repoid", updateRepo.ID)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	if !domain.ValidID(updateRepo.ID) {
		err := fmt.Errorf("can't update %q: %w", updateRepo.ID, domain.ErrInvalidID)
		span.RecordError(err)
		return nil, err
	}

	r, err := uc.repoStore.Update(ctx, updateRepo)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return r, nil
}

func (uc *repositoryUsecase) Delete(c context.Context, id string) error {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Delete",
		trace.WithAttributes(
			attribute.String("repoid", id)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	if !domain.ValidID(id) {
		err := fmt.Errorf("can't delete %q: %w", id, domain.ErrInvalidID)
		span.RecordError(err)
		return err
	}

	err := uc.repoStore.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

func (uc *repositoryUsecase) Like(c context.Context, id string) (*domain.Repository, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Like",
		trace.WithAttributes(
			attribute.String("repoid", id)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	if !domain.ValidID(id) {
		err := fmt.Errorf("can't like %q: %w", id, domain.ErrInvalidID)
		span.RecordError(err)
		return nil, err
	}

	r, err := uc.repoStore.Like(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return r, nil
}
