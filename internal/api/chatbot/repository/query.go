package chatbotRepository

const (
	queryCreateInteraction = `
		INSERT INTO chatbot_interactions (
			id,
			session_id,
			customer_id,
			query,
			intent,
			response_type,
			confidence,
			processing_time_ms,
			created_at
		) VALUES (
			:id,
			:session_id,
			:customer_id,
			:query,
			:intent,
			:response_type,
			:confidence,
			:processing_time_ms,
			:created_at
		)
	`

	queryCreateFeedback = `
		INSERT INTO chatbot_feedback (
			id,
			interaction_id,
			rating,
			comments,
			created_at
		) VALUES (
			:id,
			:interaction_id,
			:rating,
			:comments,
			:created_at
		)
	`

	queryListFeedback = `
		SELECT
			id,
			interaction_id,
			rating,
			comments,
			created_at
		FROM chatbot_feedback
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryFeedbackStats = `
		SELECT
			COUNT(*) AS total,
			COALESCE(AVG(rating), 0) AS average_rating
		FROM chatbot_feedback
	`
)
