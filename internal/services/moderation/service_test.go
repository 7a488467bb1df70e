package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/notify"
	"github.com/gignest/gignest_backend/internal/realtime"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func nopNotifier(gdb *gorm.DB) *notify.Service {
	log := zap.NewNop()
	bridge := realtime.NewBridge(realtime.NewRedis("127.0.0.1:0", ""), nil, log)
	return notify.NewService(gdb, bridge, log)
}

func userRows(id uuid.UUID, role string, banned bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "is_banned"}).
		AddRow(id.String(), "asha", "asha@example.com", "x", role, banned)
}

func selectedGigRows(gigID, clientID, studentID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "client_id", "title", "status", "selected_student_id", "number_of_reports", "budget", "currency", "version",
	}).AddRow(
		gigID.String(), clientID.String(), "Build a landing page", "in-progress",
		studentID.String(), 2, 1000, "INR", 7,
	)
}

func emptyGigRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"})
}

// A failure on any write of the cascade batch must roll back everything
// written before it: the user flag and the gig reset are not observable
// without the cascade notification.
func TestSetBannedRollsBackWholeCascade(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewService(gdb, nopNotifier(gdb), zap.NewNop())

	student := uuid.New()
	client := uuid.New()
	gigID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id =`).
		WillReturnRows(userRows(student, "student", false))
	mock.ExpectQuery(`SELECT \* FROM "gigs" WHERE selected_student_id =`).
		WillReturnRows(selectedGigRows(gigID, client, student))
	mock.ExpectQuery(`SELECT \* FROM "gigs" WHERE status =`).
		WillReturnRows(emptyGigRows())
	mock.ExpectExec(`UPDATE "users" SET "is_banned"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "gigs" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnError(errors.New("notifications relation unavailable"))
	mock.ExpectRollback()

	err := svc.SetBanned(context.Background(), student, true)
	assert.ErrorIs(t, err, errdefs.ErrCascadeFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The full student cascade commits in one transaction: flag, gig reset,
// notification and post removal, in that order, then a single COMMIT.
func TestSetBannedCommitsCascadeAtomically(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewService(gdb, nopNotifier(gdb), zap.NewNop())

	student := uuid.New()
	client := uuid.New()
	gigID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id =`).
		WillReturnRows(userRows(student, "student", false))
	mock.ExpectQuery(`SELECT \* FROM "gigs" WHERE selected_student_id =`).
		WillReturnRows(selectedGigRows(gigID, client, student))
	mock.ExpectQuery(`SELECT \* FROM "gigs" WHERE status =`).
		WillReturnRows(emptyGigRows())
	mock.ExpectExec(`UPDATE "users" SET "is_banned"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "gigs" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "posts" SET "is_removed"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := svc.SetBanned(context.Background(), student, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent writer bumping a gig's version mid-cascade aborts the whole
// cascade instead of silently overwriting the racing write.
func TestSetBannedAbortsOnGigVersionConflict(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewService(gdb, nopNotifier(gdb), zap.NewNop())

	student := uuid.New()
	client := uuid.New()
	gigID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id =`).
		WillReturnRows(userRows(student, "student", false))
	mock.ExpectQuery(`SELECT \* FROM "gigs" WHERE selected_student_id =`).
		WillReturnRows(selectedGigRows(gigID, client, student))
	mock.ExpectQuery(`SELECT \* FROM "gigs" WHERE status =`).
		WillReturnRows(emptyGigRows())
	mock.ExpectExec(`UPDATE "users" SET "is_banned"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "gigs" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.SetBanned(context.Background(), student, true)
	assert.ErrorIs(t, err, errdefs.ErrCascadeFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetBannedIdempotentWhenFlagUnchanged(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewService(gdb, nopNotifier(gdb), zap.NewNop())

	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id =`).
		WillReturnRows(userRows(userID, "student", true))
	mock.ExpectCommit()

	err := svc.SetBanned(context.Background(), userID, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
