package prediction

import "HotelGolang/pkg/response"

var (
	ErrInvalidDateRange = response.NewError(400, "end date must not be before start date and the range must not exceed one year")
	ErrInvalidDate      = response.NewError(400, "dates must use the YYYY-MM-DD format")
	ErrNoData           = response.NewError(422, "not enough historical data to forecast this room type")
	ErrLoadMetrics      = response.NewError(500, "failed to load historical room metrics")
	ErrLoadEvents       = response.NewError(500, "failed to load local events")
)
