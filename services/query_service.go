package services

import (
	"context"
	"time"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// QueryService answers the read-only questions the dashboard asks.
type QueryService struct {
	base
}

func NewQueryService(store *repository.Store, rules Rules) *QueryService {
	return &QueryService{base: newBase(store, rules, nil)}
}

type StatusCounts map[models.ReservationStatus]int

func countByStatus(reservations []models.Reservation) StatusCounts {
	counts := make(StatusCounts, len(models.Statuses))
	for _, st := range models.Statuses {
		counts[st] = 0
	}
	for _, r := range reservations {
		counts[r.Status]++
	}
	return counts
}

type TableAvailability struct {
	Table       models.Table        `json:"table"`
	Available   bool                `json:"available"`
	Reservation *models.Reservation `json:"reservation,omitempty"`
}

type AvailabilitySummary struct {
	At          time.Time           `json:"at"`
	Available   []models.Table      `json:"available_tables"`
	Occupied    []TableAvailability `json:"occupied_tables"`
	TotalTables int                 `json:"total_tables"`
}

type DaySummary struct {
	Date         string               `json:"date"`
	Total        int                  `json:"total"`
	ByStatus     StatusCounts         `json:"by_status"`
	Reservations []models.Reservation `json:"reservations"`
}

type CustomerHistory struct {
	Customer     models.Customer      `json:"customer"`
	Total        int                  `json:"total"`
	ByStatus     StatusCounts         `json:"by_status"`
	Reservations []models.Reservation `json:"reservations"`
}

type ReservationDigest struct {
	ID           uint   `json:"id"`
	TableNumber  uint   `json:"table_number"`
	CustomerName string `json:"customer_name"`
	PartySize    int    `json:"party_size"`
}

type HourSlot struct {
	Hour         int                 `json:"hour"`
	Label        string              `json:"label"`
	Occupied     int                 `json:"occupied"`
	Available    int                 `json:"available"`
	Reservations []ReservationDigest `json:"reservations"`
}

type HourlyOccupancy struct {
	Date        string     `json:"date"`
	TotalTables int        `json:"total_tables"`
	Hours       []HourSlot `json:"hours"`
}

type TablePopularity struct {
	repository.TableUsage
	Location string `json:"location,omitempty"`
}

type PopularTables struct {
	Days   int               `json:"days"`
	From   time.Time         `json:"from"`
	To     time.Time         `json:"to"`
	Tables []TablePopularity `json:"tables"`
}

// DefaultPopularityDays is the look-back window when none is given.
const DefaultPopularityDays = 30

// Today is the local calendar day of the service clock.
func (s *QueryService) Today() time.Time {
	start, _ := utils.DayBounds(s.now(), s.rules.location())
	return start
}

// ReservationsForDay lists every reservation on the local day containing
// day, earliest first.
func (s *QueryService) ReservationsForDay(ctx context.Context, day time.Time) ([]models.Reservation, error) {
	from, to := utils.DayBounds(day, s.rules.location())
	return s.store.Reservations.List(ctx, repository.ReservationFilter{From: from, To: to, Ascending: true})
}

func (s *QueryService) DaySummary(ctx context.Context, day time.Time) (*DaySummary, error) {
	reservations, err := s.ReservationsForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return &DaySummary{
		Date:         day.In(s.rules.location()).Format("2006-01-02"),
		Total:        len(reservations),
		ByStatus:     countByStatus(reservations),
		Reservations: reservations,
	}, nil
}

// Availability reports, for every active table, whether a confirmed
// reservation sits at exactly at. Only an exact timestamp match occupies a
// table here; the booking overlap window does not apply.
func (s *QueryService) Availability(ctx context.Context, at time.Time) ([]TableAvailability, error) {
	at = normalize(at)
	tables, err := s.store.Tables.List(ctx, true)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.store.Reservations.ConfirmedAt(ctx, at)
	if err != nil {
		return nil, err
	}
	byTable := make(map[uint]*models.Reservation, len(confirmed))
	for i := range confirmed {
		if _, seen := byTable[confirmed[i].TableNumber]; !seen {
			byTable[confirmed[i].TableNumber] = &confirmed[i]
		}
	}

	result := make([]TableAvailability, 0, len(tables))
	for _, t := range tables {
		r := byTable[t.Number]
		result = append(result, TableAvailability{Table: t, Available: r == nil, Reservation: r})
	}
	return result, nil
}

func (s *QueryService) AvailabilitySummary(ctx context.Context, at time.Time) (*AvailabilitySummary, error) {
	slots, err := s.Availability(ctx, at)
	if err != nil {
		return nil, err
	}
	summary := &AvailabilitySummary{
		At:          normalize(at),
		Available:   []models.Table{},
		Occupied:    []TableAvailability{},
		TotalTables: len(slots),
	}
	for _, slot := range slots {
		if slot.Available {
			summary.Available = append(summary.Available, slot.Table)
		} else {
			summary.Occupied = append(summary.Occupied, slot)
		}
	}
	return summary, nil
}

func (s *QueryService) CustomerHistory(ctx context.Context, customerID uint) (*CustomerHistory, error) {
	customer, err := s.store.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	reservations, err := s.store.Reservations.List(ctx, repository.ReservationFilter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	return &CustomerHistory{
		Customer:     *customer,
		Total:        len(reservations),
		ByStatus:     countByStatus(reservations),
		Reservations: reservations,
	}, nil
}

// HourlyOccupancy buckets the day's non-cancelled reservations by starting
// hour across opening hours.
func (s *QueryService) HourlyOccupancy(ctx context.Context, day time.Time) (*HourlyOccupancy, error) {
	tables, err := s.store.Tables.List(ctx, true)
	if err != nil {
		return nil, err
	}
	reservations, err := s.ReservationsForDay(ctx, day)
	if err != nil {
		return nil, err
	}

	loc := s.rules.location()
	result := &HourlyOccupancy{
		Date:        day.In(loc).Format("2006-01-02"),
		TotalTables: len(tables),
	}
	index := make(map[int]int)
	for h := s.rules.OpenHour; h <= s.rules.CloseHour; h++ {
		index[h] = len(result.Hours)
		result.Hours = append(result.Hours, HourSlot{
			Hour:         h,
			Label:        time.Date(2000, 1, 1, h%24, 0, 0, 0, time.UTC).Format("15:04"),
			Available:    len(tables),
			Reservations: []ReservationDigest{},
		})
	}

	for _, r := range reservations {
		if !r.Active() {
			continue
		}
		i, ok := index[r.DateTime.In(loc).Hour()]
		if !ok {
			continue
		}
		slot := &result.Hours[i]
		slot.Occupied++
		slot.Available--
		digest := ReservationDigest{ID: r.ID, TableNumber: r.TableNumber, PartySize: r.PartySize}
		if r.Customer != nil {
			digest.CustomerName = r.Customer.FullName()
		}
		slot.Reservations = append(slot.Reservations, digest)
	}
	return result, nil
}

// PopularTables ranks tables by non-cancelled reservations over the last
// days days.
func (s *QueryService) PopularTables(ctx context.Context, days int) (*PopularTables, error) {
	if days == 0 {
		days = DefaultPopularityDays
	}
	if days < 0 {
		return nil, apperrors.Invalid("days must be positive")
	}
	to := s.now()
	from := to.AddDate(0, 0, -days)

	usage, err := s.store.Reservations.UsageByTable(ctx, from, to)
	if err != nil {
		return nil, err
	}
	tables, err := s.store.Tables.List(ctx, false)
	if err != nil {
		return nil, err
	}
	locations := make(map[uint]string, len(tables))
	for _, t := range tables {
		locations[t.Number] = t.Location
	}

	result := &PopularTables{Days: days, From: from.UTC(), To: to.UTC(), Tables: make([]TablePopularity, 0, len(usage))}
	for _, u := range usage {
		result.Tables = append(result.Tables, TablePopularity{TableUsage: u, Location: locations[u.TableNumber]})
	}
	return result, nil
}
