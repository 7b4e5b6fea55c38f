package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"mastodon-analytics-service/internal/counter"
)

func TestSampleRepository_FindSamples(t *testing.T) {
	db, mock := newMock(t)

	at := time.Date(2023, 5, 16, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"metric", "item_id", "fetched_at", "value"}).
		AddRow("followers", "", at, int64(150)).
		AddRow("boosts", "109", at, int64(3))

	from := time.Date(2023, 5, 16, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery("SELECT (.+) FROM counter_samples").
		WithArgs("acc-1", sqlmock.AnyArg(), from, to).
		WillReturnRows(rows)

	repo := NewSampleRepository(db)
	got, err := repo.FindSamples(context.Background(), "acc-1", []counter.Metric{counter.Followers, counter.Boosts}, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[1].Metric != counter.Boosts || got[1].ItemID != "109" || got[1].Value != 3 {
		t.Fatalf("unexpected sample: %+v", got[1])
	}
	if got[0].AccountID != "acc-1" {
		t.Fatalf("expected account id to be set, got %q", got[0].AccountID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSampleRepository_OpenLowerBound(t *testing.T) {
	db, mock := newMock(t)

	to := time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM counter_samples").
		WithArgs("acc-1", sqlmock.AnyArg(), time.Unix(0, 0).UTC(), to).
		WillReturnRows(sqlmock.NewRows([]string{"metric", "item_id", "fetched_at", "value"}))

	repo := NewSampleRepository(db)
	got, err := repo.FindSamples(context.Background(), "acc-1", counter.All(), time.Time{}, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no samples, got %d", len(got))
	}
}

func TestSampleRepository_QueryError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM counter_samples").WillReturnError(errors.New("db error"))

	repo := NewSampleRepository(db)
	if _, err := repo.FindSamples(context.Background(), "acc-1", counter.All(), time.Time{}, time.Now()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestAccountRepository_ListActiveAccounts(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT id, timezone FROM accounts WHERE active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timezone"}).
			AddRow("a", "Europe/Berlin").
			AddRow("b", "UTC"))

	repo := NewAccountRepository(db)
	got, err := repo.ListActiveAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Timezone != "Europe/Berlin" || got[1].ID != "b" {
		t.Fatalf("unexpected accounts: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
