package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

// TableSuggestion is one ranked candidate from the scoring pass.
type TableSuggestion struct {
	TableID     uint   `json:"table_id"`
	TableNumber string `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Reason      string `json:"reason"`
	Score       int    `json:"score"`
}

// RedistributionSuggestion flags a confirmed reservation that would sit
// meaningfully better on another table.
type RedistributionSuggestion struct {
	ReservationID  uint   `json:"reservation_id"`
	CurrentTable   string `json:"current_table"`
	SuggestedTable string `json:"suggested_table"`
	Improvement    int    `json:"improvement"`
	Reason         string `json:"reason"`
}

type RedistributionReport struct {
	Optimized   int                        `json:"optimized"`
	Suggestions []RedistributionSuggestion `json:"suggestions"`
}

// SeatingService ranks tables for a requested party and window. The scoring
// itself is pure; all rows are loaded up front and passed in as snapshots.
type SeatingService struct {
	tables       TableStore
	reservations ReservationStore
}

func NewSeatingService(tables TableStore, reservations ReservationStore) *SeatingService {
	return &SeatingService{tables: tables, reservations: reservations}
}

// SuggestOptimalTable scores every active table of the restaurant against the
// requested window and returns the suitable ones, best first. Tables are
// visited in ascending capacity order, so equal scores keep the tighter fit
// in front.
func (s *SeatingService) SuggestOptimalTable(restaurantID uint, partySize int, date, startTime string, duration int) ([]TableSuggestion, error) {
	endTime := utils.AddMinutesToTime(startTime, duration)
	if endTime == "" {
		return nil, utils.BadRequest("Invalid reservation time")
	}

	tables, err := s.tables.FindByRestaurant(restaurantID, true)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.FindForDate(restaurantID, date)
	if err != nil {
		return nil, err
	}

	var suggestions []TableSuggestion
	for i := range tables {
		table := &tables[i]
		score := scoreTable(table, partySize, startTime, endTime, reservations)
		if score > 0 {
			suggestions = append(suggestions, TableSuggestion{
				TableID:     table.ID,
				TableNumber: table.TableNumber,
				Capacity:    table.Capacity,
				Reason:      suggestionReason(table, partySize, score),
				Score:       score,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions, nil
}

// scoreTable computes the suitability score for one table. Zero means the
// table cannot take the party at all.
func scoreTable(table *models.Table, partySize int, startTime, endTime string, reservations []models.Reservation) int {
	score := 100

	if table.Capacity < partySize {
		return 0
	}

	for _, res := range reservations {
		if res.TableID != table.ID {
			continue
		}
		if utils.TimesOverlap(startTime, endTime, res.StartTime, res.EndTime) {
			return 0
		}
	}

	overage := table.Capacity - partySize
	switch {
	case overage == 0:
		score += 50
	case overage == 1:
		score += 30
	case overage == 2:
		score += 20
	default:
		score -= overage * 5
	}

	location := strings.ToLower(table.LocationOrEmpty())
	if strings.Contains(location, "window") {
		score += 10
	}
	if strings.Contains(location, "quiet") {
		score += 5
	}

	// Prefer less busy tables: every reservation already on the table that
	// day costs a few points, overlap or not.
	tableReservations := 0
	for _, res := range reservations {
		if res.TableID == table.ID {
			tableReservations++
		}
	}
	score -= tableReservations * 3

	if score < 0 {
		return 0
	}
	return score
}

func suggestionReason(table *models.Table, partySize, score int) string {
	var reasons []string

	switch table.Capacity - partySize {
	case 0:
		reasons = append(reasons, "Perfect fit for your party")
	case 1:
		reasons = append(reasons, "Excellent fit with minimal extra space")
	case 2:
		reasons = append(reasons, "Good fit with comfortable spacing")
	default:
		reasons = append(reasons, fmt.Sprintf("Accommodates %d guests", table.Capacity))
	}

	if loc := table.LocationOrEmpty(); loc != "" {
		reasons = append(reasons, fmt.Sprintf("Located in %s", loc))
	}

	if score > 120 {
		reasons = append(reasons, "Highly recommended")
	} else if score > 100 {
		reasons = append(reasons, "Recommended")
	}

	return strings.Join(reasons, ", ")
}

// RedistributeReservations reports confirmed reservations whose best
// alternative table beats their current one by more than 20 points. It does
// not move anything; the report is for the floor manager.
func (s *SeatingService) RedistributeReservations(restaurantID uint, date string) (*RedistributionReport, error) {
	reservations, err := s.reservations.FindConfirmedForDate(restaurantID, date)
	if err != nil {
		return nil, err
	}

	report := &RedistributionReport{Suggestions: []RedistributionSuggestion{}}

	for _, reservation := range reservations {
		currentTable, err := s.tables.FindByID(reservation.TableID)
		if err != nil {
			continue
		}

		candidates, err := s.SuggestOptimalTable(
			restaurantID,
			reservation.PartySize,
			reservation.ReservationDate,
			reservation.StartTime,
			reservation.Duration,
		)
		if err != nil {
			return nil, err
		}

		others := make([]models.Reservation, 0, len(reservations))
		for _, other := range reservations {
			if other.ID != reservation.ID {
				others = append(others, other)
			}
		}
		currentScore := scoreTable(currentTable, reservation.PartySize,
			reservation.StartTime, reservation.EndTime, others)

		if len(candidates) > 0 && candidates[0].Score > currentScore+20 {
			report.Suggestions = append(report.Suggestions, RedistributionSuggestion{
				ReservationID:  reservation.ID,
				CurrentTable:   currentTable.TableNumber,
				SuggestedTable: candidates[0].TableNumber,
				Improvement:    candidates[0].Score - currentScore,
				Reason:         candidates[0].Reason,
			})
			report.Optimized++
		}
	}

	return report, nil
}
