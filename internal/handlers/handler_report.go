package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

// reportHandler handles HTTP requests for derived reports.
type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportRoutes registers routes related to reports.
func registerReportRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &reportHandler{reportingService: services.Reporting}

	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/verify-equation", h.verifyEquation)
	}
}

// parsePeriod resolves start_date/end_date query parameters, defaulting to
// the current calendar year.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := now

	if s, ok := parseDateQuery(c, "start_date"); !ok {
		return time.Time{}, time.Time{}, false
	} else if s != nil {
		start = *s
	}
	if e, ok := parseDateQuery(c, "end_date"); !ok {
		return time.Time{}, time.Time{}, false
	} else if e != nil {
		end = *e
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not precede start_date"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *reportHandler) getBalanceSheet(c *gin.Context) {
	asOf := time.Now()
	if d, ok := parseDateQuery(c, "date"); !ok {
		return
	} else if d != nil {
		asOf = *d
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf.Format("2006-01-02")))
}

func (h *reportHandler) getIncomeStatement(c *gin.Context) {
	start, end, ok := parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to build income statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report, start.Format("2006-01-02"), end.Format("2006-01-02")))
}

func (h *reportHandler) getCashFlow(c *gin.Context) {
	start, end, ok := parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to build cash flow report")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}

func (h *reportHandler) getDashboard(c *gin.Context) {
	report, err := h.reportingService.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(report))
}

func (h *reportHandler) verifyEquation(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	report, err := h.reportingService.VerifyEquation(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to verify accounting equation")
		return
	}
	c.JSON(http.StatusOK, dto.ToEquationResponse(report))
}
