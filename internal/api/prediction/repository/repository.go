package predictionRepository

import (
	"time"

	"HotelGolang/internal/entity"
	"HotelGolang/pkg/forecast"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// metricsLookbackDays is the booking history window the aggregates cover.
const metricsLookbackDays = 90

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
		now: time.Now,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
	now func() time.Time
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Metrics:  &metricsRepository{q: sqlExecutor, log: r.log, now: r.now},
		Events:   &eventsRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	// Metrics is both the historical metrics and the room inventory provider.
	Metrics interface {
		GetRoomMetrics(ctx context.Context, roomTypes []string) ([]forecast.RoomMetrics, error)
	}

	Events interface {
		GetLocalEvents(ctx context.Context, start, end time.Time) ([]entity.LocalEvent, error)
	}

	Commit   func() error
	Rollback func() error
}

type metricsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
	now func() time.Time
}

type eventsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
