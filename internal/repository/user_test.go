package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"photoshare/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByLoginName(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE login_name = $1 ORDER BY "users"."id" LIMIT $2`)

	tests := []struct {
		name         string
		mockBehavior func()
		wantUser     bool
		wantErr      bool
	}{
		{
			name: "Found",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "login_name", "password"}).
					AddRow("57231f1a30e4351f4e9f4bd7", "Ian", "Malcolm", "malcolm", "weak")
				mock.ExpectQuery(query).WithArgs("malcolm", 1).WillReturnRows(rows)
			},
			wantUser: true,
		},
		{
			name: "Not Found",
			mockBehavior: func() {
				mock.ExpectQuery(query).WithArgs("malcolm", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
		},
		{
			name: "Database Error",
			mockBehavior: func() {
				mock.ExpectQuery(query).WithArgs("malcolm", 1).WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByLoginName(ctx, "malcolm")

			if tt.wantErr {
				assert.Equal(t, models.CodeInternal, models.ErrorCode(err))
			} else {
				require.NoError(t, err)
			}
			if tt.wantUser {
				require.NotNil(t, user)
				assert.Equal(t, "Ian", user.FirstName)
			} else {
				assert.Nil(t, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPhotoRepository_CountCommentsByOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPhotoRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments" JOIN photos ON photos.id = comments.photo_id WHERE photos.user_id = $1`)).
		WithArgs("57231f1a30e4351f4e9f4bd7").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.CountCommentsByOwner(context.Background(), "57231f1a30e4351f4e9f4bd7")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_login_name" (SQLSTATE 23505)`)))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.login_name")))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
}
