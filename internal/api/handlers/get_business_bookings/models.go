package get_business_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/service/bookings/models"
)

// ParseFilter собирает фильтр бронирований бизнеса из query-параметров
func ParseFilter(userID, businessID int64, query url.Values) (*models.GetBusinessBookingsRequest, error) {
	req := &models.GetBusinessBookingsRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if activityIDStr := query.Get("activityId"); activityIDStr != "" {
		activityID, err := strconv.ParseInt(activityIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid activityId %q: %w", activityIDStr, err)
		}
		req.ActivityID = &activityID
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", startDateStr, err)
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", endDateStr, err)
		}
		req.EndDate = &endDate
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive %q: %w", includeInactiveStr, err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
