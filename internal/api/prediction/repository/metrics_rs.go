package predictionRepository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	contextPkg "HotelGolang/pkg/context"
	"HotelGolang/pkg/forecast"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type RoomMetricsDB struct {
	RoomType      sql.NullString  `db:"room_type"`
	TotalRooms    sql.NullInt64   `db:"total_rooms"`
	AveragePrice  sql.NullFloat64 `db:"average_price"`
	OccupancyRate sql.NullFloat64 `db:"occupancy_rate"`
}

func (r *metricsRepository) GetRoomMetrics(ctx context.Context, roomTypes []string) ([]forecast.RoomMetrics, error) {
	requestID := contextPkg.GetRequestID(ctx)

	lowered := lowerRoomTypes(roomTypes)
	argsKV := roomMetricsArgs(r.now(), lowered)

	query, args, err := sqlx.Named(queryGetRoomMetrics, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRoomMetrics named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []RoomMetricsDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"room_types": lowered,
			"error":      err.Error(),
		}).Error("GetRoomMetrics execution err")
		return nil, err
	}

	metrics := make([]forecast.RoomMetrics, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, r.makeRoomMetrics(row))
	}

	return metrics, nil
}

func (r *metricsRepository) makeRoomMetrics(row RoomMetricsDB) forecast.RoomMetrics {
	return forecast.RoomMetrics{
		RoomType:      row.RoomType.String,
		TotalRooms:    int(row.TotalRooms.Int64),
		AveragePrice:  row.AveragePrice.Float64,
		OccupancyRate: row.OccupancyRate.Float64,
	}
}

func lowerRoomTypes(roomTypes []string) []string {
	lowered := make([]string, 0, len(roomTypes))
	for _, rt := range roomTypes {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(rt)))
	}
	return lowered
}

// roomMetricsArgs binds the lookback window. Nights after as_of are not
// history yet and are left out of the occupancy rate.
func roomMetricsArgs(now time.Time, lowered []string) map[string]interface{} {
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return map[string]interface{}{
		"lookback_days": metricsLookbackDays,
		"since":         asOf.AddDate(0, 0, -metricsLookbackDays),
		"as_of":         asOf,
		"room_types":    pq.Array(lowered),
	}
}
