package teams

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertTeamQ       = `(?s)^INSERT\s+INTO\s+teams\s*\(id,\s*name\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+created_at\s*$`
	insertMembershipQ = `(?s)^INSERT\s+INTO\s+team_memberships\s*\(id,\s*user_id,\s*team_id,\s*role\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`
	findDefaultQ      = `(?s)^SELECT\s+t\.id,\s*t\.name,\s*t\.created_at\s+FROM\s+team_memberships\s+m\s+JOIN\s+teams\s+t\s+ON\s+t\.id\s*=\s*m\.team_id\s+WHERE\s+m\.user_id\s*=\s*\$1\s+ORDER\s+BY\s+m\.created_at,\s*m\.id\s+LIMIT\s+1\s*$`
)

func TestCreateTeam_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery(insertTeamQ).
		WithArgs(sqlmock.AnyArg(), "Alice's Team").
		WillReturnRows(rows)

	got, err := repo.CreateTeam(context.Background(), &models.Team{Name: "Alice's Team"})
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if got.ID == "" || got.Name != "Alice's Team" {
		t.Fatalf("unexpected team: %+v", got)
	}
}

func TestCreateTeam_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertTeamQ).
		WithArgs(sqlmock.AnyArg(), "Alice's Team").
		WillReturnError(errors.New("db down"))

	_, err := repo.CreateTeam(context.Background(), &models.Team{Name: "Alice's Team"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreateMembership_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery(insertMembershipQ).
		WithArgs(sqlmock.AnyArg(), "u-1", "t-1", models.RoleOwner).
		WillReturnRows(rows)

	got, err := repo.CreateMembership(context.Background(), &models.TeamMembership{
		UserID: "u-1",
		TeamID: "t-1",
		Role:   models.RoleOwner,
	})
	if err != nil {
		t.Fatalf("CreateMembership error: %v", err)
	}
	if got.ID == "" || got.Role != models.RoleOwner {
		t.Fatalf("unexpected membership: %+v", got)
	}
}

func TestCreateMembership_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertMembershipQ).
		WithArgs(sqlmock.AnyArg(), "u-1", "t-1", models.RoleOwner).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.CreateMembership(context.Background(), &models.TeamMembership{
		UserID: "u-1",
		TeamID: "t-1",
		Role:   models.RoleOwner,
	})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestFindDefaultTeam_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow("t-1", "First Team", time.Now())
	mock.ExpectQuery(findDefaultQ).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.FindDefaultTeam(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("FindDefaultTeam error: %v", err)
	}
	if got.ID != "t-1" || got.Name != "First Team" {
		t.Fatalf("unexpected team: %+v", got)
	}
}

func TestFindDefaultTeam_NoMembership(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findDefaultQ).
		WithArgs("u-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindDefaultTeam(context.Background(), "u-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
