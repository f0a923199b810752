package predictionRepository

const (
	queryGetRoomMetrics = `
		SELECT
			MIN(r.room_type) AS room_type,
			COUNT(DISTINCT r.id) AS total_rooms,
			COALESCE(AVG(b.price_per_night), 0) AS average_price,
			COALESCE(
				CAST(SUM(GREATEST(LEAST(b.check_out, CAST(:as_of AS DATE)) - b.check_in, 0)) AS DOUBLE PRECISION)
					/ NULLIF(COUNT(DISTINCT r.id) * :lookback_days, 0),
				0
			) AS occupancy_rate
		FROM rooms r
		LEFT JOIN bookings b
			ON b.room_id = r.id
			AND b.status <> 'cancelled'
			AND b.check_in >= :since
		WHERE LOWER(r.room_type) = ANY(:room_types)
		GROUP BY LOWER(r.room_type)
		ORDER BY LOWER(r.room_type) ASC
	`

	queryGetLocalEvents = `
		SELECT
			name,
			event_date
		FROM local_events
		WHERE event_date BETWEEN :start_date AND :end_date
		ORDER BY event_date ASC, name ASC
	`
)
