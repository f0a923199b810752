package chatbotRepository

import (
	"context"
	"database/sql"
	"time"

	"HotelGolang/internal/entity"
	contextPkg "HotelGolang/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type FeedbackDB struct {
	ID            sql.NullString `db:"id"`
	InteractionID sql.NullString `db:"interaction_id"`
	Rating        sql.NullInt64  `db:"rating"`
	Comments      sql.NullString `db:"comments"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (r *feedbackRepository) CreateFeedback(ctx context.Context, feedback entity.Feedback) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":             feedback.ID,
		"interaction_id": feedback.InteractionID,
		"rating":         feedback.Rating,
		"comments":       sql.NullString{String: feedback.Comments, Valid: feedback.Comments != ""},
		"created_at":     feedback.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateFeedback, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateFeedback")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating feedback")
		return err
	}

	return nil
}

func (r *feedbackRepository) ListFeedback(ctx context.Context, limit, offset int) ([]entity.Feedback, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryListFeedback, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListFeedback named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []FeedbackDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListFeedback execution err")
		return nil, err
	}

	feedback := make([]entity.Feedback, 0, len(rows))
	for _, row := range rows {
		feedback = append(feedback, r.makeFeedback(row))
	}

	return feedback, nil
}

func (r *feedbackRepository) GetFeedbackStats(ctx context.Context) (int, float64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var stats struct {
		Total         int     `db:"total"`
		AverageRating float64 `db:"average_rating"`
	}

	if err := r.q.QueryRowxContext(ctx, queryFeedbackStats).StructScan(&stats); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFeedbackStats execution err")
		return 0, 0, err
	}

	return stats.Total, stats.AverageRating, nil
}

func (r *feedbackRepository) makeFeedback(row FeedbackDB) entity.Feedback {
	return entity.Feedback{
		ID:            row.ID.String,
		InteractionID: row.InteractionID.String,
		Rating:        int(row.Rating.Int64),
		Comments:      row.Comments.String,
		CreatedAt:     row.CreatedAt,
	}
}
