package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/reports"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// defaultReportDays is the range used when ?from= is omitted.
const defaultReportDays = 7

type ReportController struct {
	Service  *services.ReportService
	Queries  *services.QueryService
	Location *time.Location
}

func NewReportController(service *services.ReportService, queries *services.QueryService, loc *time.Location) *ReportController {
	return &ReportController{Service: service, Queries: queries, Location: loc}
}

func (rc *ReportController) build(c *gin.Context) (*services.OccupancyReport, bool) {
	today := rc.Queries.Today()
	to, ok := dateQuery(c, "to", today, rc.Location)
	if !ok {
		return nil, false
	}
	from, ok := dateQuery(c, "from", to.AddDate(0, 0, -defaultReportDays), rc.Location)
	if !ok {
		return nil, false
	}
	report, err := rc.Service.OccupancyReport(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondAppError(c, err)
		return nil, false
	}
	return report, true
}

func (rc *ReportController) Occupancy(c *gin.Context) {
	report, ok := rc.build(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Occupancy report", report)
}

func (rc *ReportController) OccupancyCSV(c *gin.Context) {
	report, ok := rc.build(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, report); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	attachment(c, reports.FileName(report, "csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (rc *ReportController) OccupancyPDF(c *gin.Context) {
	report, ok := rc.build(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := reports.WritePDF(&buf, report); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	attachment(c, reports.FileName(report, "pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
}
