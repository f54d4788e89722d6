package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
)

// TopTablesLimit caps the popularity ranking in occupancy reports.
const TopTablesLimit = 10

type ReportService struct {
	base
}

func NewReportService(store *repository.Store, rules Rules) *ReportService {
	return &ReportService{base: newBase(store, rules, nil)}
}

type DayOccupancy struct {
	Date     string       `json:"date"`
	Total    int          `json:"total"`
	ByStatus StatusCounts `json:"by_status"`
}

type TableCount struct {
	TableNumber  uint `json:"table_number"`
	Reservations int  `json:"reservations"`
}

type OccupancyReport struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	Days          int            `json:"days"`
	ActiveTables  int            `json:"active_tables"`
	Total         int            `json:"total"`
	ByStatus      StatusCounts   `json:"by_status"`
	PerDay        []DayOccupancy `json:"per_day"`
	PopularTables []TableCount   `json:"popular_tables"`
	OccupancyRate float64        `json:"occupancy_rate"`
}

// OccupancyReport folds every reservation whose local date lies in
// [from, to], both days inclusive.
func (s *ReportService) OccupancyReport(ctx context.Context, from, to time.Time) (*OccupancyReport, error) {
	loc := s.rules.location()
	start := time.Date(from.In(loc).Year(), from.In(loc).Month(), from.In(loc).Day(), 0, 0, 0, 0, loc)
	last := time.Date(to.In(loc).Year(), to.In(loc).Month(), to.In(loc).Day(), 0, 0, 0, 0, loc)
	if last.Before(start) {
		return nil, apperrors.Invalid("report end date is before its start date")
	}
	end := last.AddDate(0, 0, 1)

	reservations, err := s.store.Reservations.List(ctx, repository.ReservationFilter{From: start, To: end, Ascending: true})
	if err != nil {
		return nil, err
	}
	tables, err := s.store.Tables.List(ctx, true)
	if err != nil {
		return nil, err
	}

	report := BuildOccupancyReport(reservations, len(tables), start, last, loc)
	return report, nil
}

// BuildOccupancyReport is the pure fold behind OccupancyReport.
// reservations must already be limited to the range.
func BuildOccupancyReport(reservations []models.Reservation, activeTables int, start, last time.Time, loc *time.Location) *OccupancyReport {
	days := daysBetween(start, last) + 1
	report := &OccupancyReport{
		From:          start.Format("2006-01-02"),
		To:            last.Format("2006-01-02"),
		Days:          days,
		ActiveTables:  activeTables,
		Total:         len(reservations),
		ByStatus:      countByStatus(reservations),
		PerDay:        []DayOccupancy{},
		PopularTables: []TableCount{},
	}

	dayIndex := make(map[string]int)
	tableIndex := make(map[uint]int)
	for _, r := range reservations {
		key := r.DateTime.In(loc).Format("2006-01-02")
		i, ok := dayIndex[key]
		if !ok {
			i = len(report.PerDay)
			dayIndex[key] = i
			report.PerDay = append(report.PerDay, DayOccupancy{Date: key, ByStatus: countByStatus(nil)})
		}
		report.PerDay[i].Total++
		report.PerDay[i].ByStatus[r.Status]++

		j, ok := tableIndex[r.TableNumber]
		if !ok {
			j = len(report.PopularTables)
			tableIndex[r.TableNumber] = j
			report.PopularTables = append(report.PopularTables, TableCount{TableNumber: r.TableNumber})
		}
		report.PopularTables[j].Reservations++
	}

	sort.SliceStable(report.PopularTables, func(a, b int) bool {
		return report.PopularTables[a].Reservations > report.PopularTables[b].Reservations
	})
	if len(report.PopularTables) > TopTablesLimit {
		report.PopularTables = report.PopularTables[:TopTablesLimit]
	}

	if activeTables > 0 {
		rate := float64(report.Total) / float64(days*activeTables) * 100
		report.OccupancyRate = math.Round(rate*100) / 100
	}
	return report
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
