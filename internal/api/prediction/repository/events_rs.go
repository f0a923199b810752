package predictionRepository

import (
	"context"
	"time"

	"HotelGolang/internal/entity"
	contextPkg "HotelGolang/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *eventsRepository) GetLocalEvents(ctx context.Context, start, end time.Time) ([]entity.LocalEvent, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
	}

	query, args, err := sqlx.Named(queryGetLocalEvents, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLocalEvents named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var events []entity.LocalEvent
	if err := r.q.SelectContext(ctx, &events, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLocalEvents execution err")
		return nil, err
	}

	return events, nil
}
