package reports

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const chartImage = "per-day-chart"

// WritePDF renders the report as a one-document A4 PDF. A bar chart of
// reservations per day is embedded when there is anything to plot.
func WritePDF(w io.Writer, r *services.OccupancyReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Occupancy report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Occupancy report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Period: %s to %s (%d days)", r.From, r.To, r.Days)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	section(pdf, "Summary")
	summary := [][2]string{
		{"Total reservations", strconv.Itoa(r.Total)},
	}
	for _, st := range models.Statuses {
		summary = append(summary, [2]string{statusLabel(st), strconv.Itoa(r.ByStatus[st])})
	}
	summary = append(summary,
		[2]string{"Active tables", strconv.Itoa(r.ActiveTables)},
		[2]string{"Average occupancy rate", fmt.Sprintf("%.2f%%", r.OccupancyRate)},
	)
	for _, kv := range summary {
		pdf.CellFormat(70, 6, tr(kv[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, kv[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if png, err := perDayChart(r); err != nil {
		utils.ErrorLogger.Warnf("Skipping occupancy chart: %v", err)
	} else if png != nil {
		section(pdf, "Reservations per day")
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(chartImage, opts, bytes.NewReader(png))
		pdf.ImageOptions(chartImage, 10, pdf.GetY(), 190, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	section(pdf, "Occupancy per day")
	header := dayHeader()
	widths := []float64{35, 25, 30, 30, 30, 30}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, d := range r.PerDay {
		pdf.CellFormat(widths[0], 6, d.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.Itoa(d.Total), "1", 0, "R", false, 0, "")
		for i, st := range models.Statuses {
			pdf.CellFormat(widths[i+2], 6, strconv.Itoa(d.ByStatus[st]), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	section(pdf, "Most popular tables")
	for i, t := range r.PopularTables {
		pdf.CellFormat(15, 6, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("Table %d", t.TableNumber), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, strconv.Itoa(t.Reservations), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

// perDayChart returns nil without error when no day has reservations.
func perDayChart(r *services.OccupancyReport) ([]byte, error) {
	peak := 0
	bars := make([]chart.Value, 0, len(r.PerDay))
	for _, d := range r.PerDay {
		bars = append(bars, chart.Value{Label: d.Date[5:], Value: float64(d.Total)})
		if d.Total > peak {
			peak = d.Total
		}
	}
	if peak == 0 {
		return nil, nil
	}

	width := 800
	barWidth := (width - 100) / (2 * len(bars))
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 4 {
		barWidth = 4
	}
	graph := chart.BarChart{
		Width:      width,
		Height:     360,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 30}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
