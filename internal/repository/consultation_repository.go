package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/db"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
)

type consultationRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewConsultation(pool *pgxpool.Pool) port.ConsultationRepository {
	return &consultationRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewConsultationWithTx(tx pgx.Tx) port.ConsultationRepository {
	return &consultationRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// Submit stores the request and returns it with its id and creation time set.
func (r *consultationRepository) Submit(ctx context.Context, c domain.Consultation) (domain.Consultation, error) {
	if err := c.Validate(); err != nil {
		return domain.Consultation{}, err
	}

	if c.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return domain.Consultation{}, fmt.Errorf("uuid.NewV7: %w", err)
		}
		c.ID = id
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Consultation, error) {
		createdAt, err := q.InsertConsultRequest(ctx, db.InsertConsultRequestParams{
			ID:      c.ID,
			Name:    c.Name,
			Email:   c.Email,
			Topic:   c.Topic,
			Message: c.Message,
		})
		if err != nil {
			return domain.Consultation{}, fmt.Errorf("q.InsertConsultRequest: %w", err)
		}

		c.CreatedAt = createdAt
		return c, nil
	})
}
