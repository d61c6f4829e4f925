package sqlc_test

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/require"

	"github.com/saeidalz13/battleship-tracker/db/sqlc"
)

func testServerInet() pqtype.Inet {
	return pqtype.Inet{
		IPNet: net.IPNet{IP: net.ParseIP("10.0.0.7").To4(), Mask: net.CIDRMask(32, 32)},
		Valid: true,
	}
}

func newTestDbManager(t *testing.T) (sqlc.DbManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlc.NewDbManager(sqlc.New(db)), mock
}

func TestIncrementMatchesCreatedCount(t *testing.T) {
	dbm, mock := newTestDbManager(t)
	inet := testServerInet()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO match_server_analytics (server_ip, matches_created)`)).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	require.NoError(t, dbm.Analytics.IncrementMatchesCreatedCount(ctx, inet))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementMatchesFinishedCountError(t *testing.T) {
	dbm, mock := newTestDbManager(t)
	inet := testServerInet()
	dbErr := errors.New("connection refused")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO match_server_analytics (server_ip, matches_finished)`)).
		WithArgs(inet).
		WillReturnError(dbErr)

	err := dbm.Analytics.IncrementMatchesFinishedCount(context.Background(), inet)
	require.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMatchesCounts(t *testing.T) {
	dbm, mock := newTestDbManager(t)
	inet := testServerInet()

	mock.ExpectQuery(`SELECT matches_created FROM match_server_analytics WHERE server_ip = \$1`).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"matches_created"}).AddRow(3))
	mock.ExpectQuery(`SELECT matches_finished FROM match_server_analytics WHERE server_ip = \$1`).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"matches_finished"}).AddRow(2))

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	created, err := dbm.Analytics.GetMatchesCreatedCount(ctx, inet)
	require.NoError(t, err)
	require.EqualValues(t, 3, created)

	finished, err := dbm.Analytics.GetMatchesFinishedCount(ctx, inet)
	require.NoError(t, err)
	require.EqualValues(t, 2, finished)

	require.NoError(t, mock.ExpectationsWereMet())
}
