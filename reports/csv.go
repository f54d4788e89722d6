package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
)

// WriteCSV renders the report as sectioned CSV: summary, per-day breakdown,
// then the table ranking.
func WriteCSV(w io.Writer, r *services.OccupancyReport) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"Occupancy report"},
		{"Period", r.From, r.To},
		{},
		{"Summary"},
		{"Total reservations", strconv.Itoa(r.Total)},
	}
	for _, st := range models.Statuses {
		rows = append(rows, []string{statusLabel(st), strconv.Itoa(r.ByStatus[st])})
	}
	rows = append(rows,
		[]string{"Average occupancy rate", fmt.Sprintf("%.2f%%", r.OccupancyRate)},
		[]string{"Days", strconv.Itoa(r.Days)},
		[]string{"Active tables", strconv.Itoa(r.ActiveTables)},
		[]string{},
		[]string{"Occupancy per day"},
		dayHeader(),
	)
	for _, d := range r.PerDay {
		row := []string{d.Date, strconv.Itoa(d.Total)}
		for _, st := range models.Statuses {
			row = append(row, strconv.Itoa(d.ByStatus[st]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, []string{}, []string{"Most popular tables"}, []string{"Table", "Reservations"})
	for _, t := range r.PopularTables {
		rows = append(rows, []string{strconv.FormatUint(uint64(t.TableNumber), 10), strconv.Itoa(t.Reservations)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func dayHeader() []string {
	header := []string{"Date", "Total"}
	for _, st := range models.Statuses {
		header = append(header, statusLabel(st))
	}
	return header
}

func statusLabel(st models.ReservationStatus) string {
	switch st {
	case models.StatusPending:
		return "Pending"
	case models.StatusConfirmed:
		return "Confirmed"
	case models.StatusCancelled:
		return "Cancelled"
	case models.StatusCompleted:
		return "Completed"
	}
	return string(st)
}

// FileName is the download name for an export of r.
func FileName(r *services.OccupancyReport, ext string) string {
	return fmt.Sprintf("occupancy-report-%s-%s.%s", r.From, r.To, ext)
}
