package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/nikolayk812/storefront-demo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type consultationRepositorySuite struct {
	suite.Suite

	repo port.ConsultationRepository
	pool *pgxpool.Pool
}

func TestConsultationRepositorySuite(t *testing.T) {
	suite.Run(t, new(consultationRepositorySuite))
}

func (suite *consultationRepositorySuite) SetupSuite() {
	suite.pool = openDatabase(suite.T())
	suite.repo = repository.NewConsultation(suite.pool)
}

func (suite *consultationRepositorySuite) TestSubmit() {
	defer suite.deleteAll()

	presetID := uuid.MustParse(gofakeit.UUID())

	tests := []struct {
		name      string
		input     domain.Consultation
		wantID    uuid.UUID
		wantError string
	}{
		{
			name:  "submit consultation: ok",
			input: randomConsultation(),
		},
		{
			name: "submit consultation with preset id: ok",
			input: func() domain.Consultation {
				c := randomConsultation()
				c.ID = presetID
				return c
			}(),
			wantID: presetID,
		},
		{
			name: "submit consultation without topic and message: ok",
			input: domain.Consultation{
				Name:  gofakeit.Name(),
				Email: gofakeit.Email(),
			},
		},
		{
			name: "submit consultation with empty name: error",
			input: domain.Consultation{
				Email: gofakeit.Email(),
			},
			wantError: "name is required",
		},
		{
			name: "submit consultation with empty email: error",
			input: domain.Consultation{
				Name: gofakeit.Name(),
			},
			wantError: "email is required",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			before := suite.count()

			actual, err := suite.repo.Submit(ctx, tt.input)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				assert.Equal(t, before, suite.count())
				return
			}
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, actual.ID)
			if tt.wantID != uuid.Nil {
				assert.Equal(t, tt.wantID, actual.ID)
			}
			assert.False(t, actual.CreatedAt.IsZero())

			diff := cmp.Diff(tt.input, actual, cmpopts.IgnoreFields(domain.Consultation{}, "ID", "CreatedAt"))
			assert.Empty(t, diff)

			assert.Equal(t, before+1, suite.count())
		})
	}
}

func (suite *consultationRepositorySuite) TestSubmitDuplicateID() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	c := randomConsultation()
	c.ID = uuid.MustParse(gofakeit.UUID())

	_, err := suite.repo.Submit(ctx, c)
	require.NoError(t, err)

	_, err = suite.repo.Submit(ctx, c)
	require.ErrorContains(t, err, "q.InsertConsultRequest")

	assert.Equal(t, int64(1), suite.count())
}

func (suite *consultationRepositorySuite) TestSubmitWithTxRollback() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	repo := repository.NewConsultationWithTx(tx)

	_, err = repo.Submit(ctx, randomConsultation())
	require.NoError(t, err)

	require.NoError(t, tx.Rollback(ctx))

	assert.Equal(t, int64(0), suite.count())
}

func (suite *consultationRepositorySuite) count() int64 {
	var n int64
	err := suite.pool.QueryRow(suite.T().Context(), "SELECT COUNT(*) FROM consult_requests").Scan(&n)
	suite.Require().NoError(err)
	return n
}

func (suite *consultationRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE consult_requests")
	suite.NoError(err)
}

func randomConsultation() domain.Consultation {
	return domain.Consultation{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Topic:   gofakeit.BuzzWord(),
		Message: gofakeit.Question(),
	}
}
