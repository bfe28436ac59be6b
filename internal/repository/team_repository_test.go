package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTeamRepo(t *testing.T) (*TeamRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewTeamRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func userColumns() []string {
	return []string{"id", "auth_id", "name", "email", "created_at"}
}

func TestTeamCreateReturnsRow(t *testing.T) {
	repo, mock := newMockTeamRepo(t)

	teamID := uuid.New()
	mock.ExpectQuery("INSERT INTO teams").
		WithArgs(sqlmock.AnyArg(), "platform").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(teamID.String(), "platform"))

	team, err := repo.Create(context.Background(), "platform")
	require.NoError(t, err)
	assert.Equal(t, teamID, team.ID)
	assert.Equal(t, "platform", team.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamMembersDifferenceExcludesSharedMembers(t *testing.T) {
	repo, mock := newMockTeamRepo(t)

	teamA := uuid.New()
	teamB := uuid.New()
	onlyInA := uuid.New()
	now := time.Now()

	mock.ExpectQuery("LEFT JOIN team_members b").
		WithArgs(teamA, teamB).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(onlyInA.String(), uuid.New().String(), "Alex", "alex@example.com", now))

	users, err := repo.MembersDifference(context.Background(), teamA, teamB)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, onlyInA, users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamIsMember(t *testing.T) {
	repo, mock := newMockTeamRepo(t)

	teamID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(teamID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	member, err := repo.IsMember(context.Background(), teamID, userID)
	require.NoError(t, err)
	assert.True(t, member)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamAddMemberIsIdempotent(t *testing.T) {
	repo, mock := newMockTeamRepo(t)

	teamID := uuid.New()
	userID := uuid.New()

	// ON CONFLICT DO NOTHING reports zero affected rows for a repeat add.
	mock.ExpectExec("INSERT INTO team_members").
		WithArgs(teamID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.AddMember(context.Background(), teamID, userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
