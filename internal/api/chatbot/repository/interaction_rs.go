package chatbotRepository

import (
	"context"
	"database/sql"

	"HotelGolang/internal/entity"
	contextPkg "HotelGolang/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *interactionsRepository) CreateInteraction(ctx context.Context, interaction entity.Interaction) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":                 interaction.ID,
		"session_id":         interaction.SessionID,
		"customer_id":        sql.NullString{String: interaction.CustomerID, Valid: interaction.CustomerID != ""},
		"query":              interaction.Query,
		"intent":             interaction.Intent,
		"response_type":      interaction.ResponseType,
		"confidence":         interaction.Confidence,
		"processing_time_ms": interaction.ProcessingTimeMs,
		"created_at":         interaction.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateInteraction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateInteraction")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating interaction")
		return err
	}

	return nil
}
