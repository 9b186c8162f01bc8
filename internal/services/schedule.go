package services

import (
	"fmt"
	"time"

	"github.com/senyabanana/trek-market/internal/models"
)

// deriveAssignment строит несохранённый поход из заявки и принятого
// предложения: старт в день принятия, длительность - по числу пунктов
// маршрута, минимум один день.
func deriveAssignment(req *models.Request, bid *models.Bid, now time.Time) *models.Assignment {
	days := len(req.Itinerary)
	if days < 1 {
		days = 1
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	return &models.Assignment{
		RequestID:   req.ID,
		RequesterID: req.OwnerID,
		AssigneeID:  bid.BidderID,
		StartDate:   start,
		EndDate:     end,
		Remarks:     fmt.Sprintf("agreed amount %s for a %d-day trek", bid.Amount.String(), days),
		Status:      models.UpcomingAssignment,
	}
}
