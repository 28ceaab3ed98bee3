package http

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"moneytrail/internal/delivery/http/dto"
	"moneytrail/internal/export"
	"moneytrail/internal/finance"
	"moneytrail/internal/middleware"
	"moneytrail/internal/usecase"
	"moneytrail/internal/utils"
)

const requestTimeout = 5 * time.Second

// RecordHandler handles financial record requests
type RecordHandler struct {
	records *usecase.RecordService
	now     func() time.Time
}

// NewRecordHandler creates a new RecordHandler. loc decides the day in
// export file names.
func NewRecordHandler(records *usecase.RecordService, loc *time.Location) *RecordHandler {
	return &RecordHandler{
		records: records,
		now:     utils.Clock(loc),
	}
}

// List returns the records table
// GET /api/financial-records
func (h *RecordHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not logged in")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	rows, err := h.records.Rows(ctx, userID)
	if err != nil {
		return FailureResponse(c, "Failed to get financial records", err)
	}

	output := make([]dto.RecordOutput, 0, len(rows))
	for _, row := range rows {
		output = append(output, dto.NewRecordOutput(row))
	}

	return SuccessResponse(c, output)
}

// Create stores a new record
// POST /api/financial-records
func (h *RecordHandler) Create(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not logged in")
	}

	var in finance.RecordInput
	if err := c.Bind(&in); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	record, err := h.records.Create(ctx, userID, in)
	if err != nil {
		return FailureResponse(c, "Failed to create financial record", err)
	}

	return CreatedResponse(c, record)
}

// Update replaces a record
// PATCH /api/financial-records/:id
func (h *RecordHandler) Update(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not logged in")
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid record ID")
	}

	var in finance.RecordInput
	if err := c.Bind(&in); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	record, err := h.records.Update(ctx, userID, recordID, in)
	if err != nil {
		return FailureResponse(c, "Failed to update financial record", err)
	}

	return SuccessResponse(c, record)
}

// Delete removes a record
// DELETE /api/financial-records/:id
func (h *RecordHandler) Delete(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not logged in")
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid record ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	record, err := h.records.Delete(ctx, userID, recordID)
	if err != nil {
		return FailureResponse(c, "Failed to delete financial record", err)
	}

	return SuccessResponse(c, record)
}

// Dashboard returns every dashboard chart
// GET /api/dashboard
func (h *RecordHandler) Dashboard(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not logged in")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	dashboard, err := h.records.Dashboard(ctx, userID)
	if err != nil {
		return FailureResponse(c, "Failed to build dashboard", err)
	}

	return SuccessResponse(c, dashboard)
}

// Chart returns a window over the requested series
// GET /api/charts?fields=cash,assetsExCash&labels=Cash,Assets ex cash
func (h *RecordHandler) Chart(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not logged in")
	}

	names := splitList(c.QueryParam("fields"))
	if len(names) == 0 {
		return BadRequestResponse(c, "At least one field is required")
	}
	fields := make([]finance.Field, 0, len(names))
	for _, name := range names {
		f, err := finance.ParseField(name)
		if err != nil {
			return BadRequestResponse(c, err.Error())
		}
		fields = append(fields, f)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	series, err := h.records.Series(ctx, userID)
	if err != nil {
		return FailureResponse(c, "Failed to aggregate financial records", err)
	}

	window, err := series.Window(fields, splitList(c.QueryParam("labels")))
	if err != nil {
		return FailureResponse(c, "Failed to build chart", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"datasetCurrency": series.DatasetCurrency,
		"window":          window,
	})
}

// Export downloads the records table as a workbook
// GET /api/financial-records/export.xlsx
func (h *RecordHandler) Export(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not logged in")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	rows, err := h.records.Rows(ctx, userID)
	if err != nil {
		return FailureResponse(c, "Failed to get financial records", err)
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, rows); err != nil {
		return InternalServerErrorResponse(c, "Failed to export financial records", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+export.FileName(h.now())+`"`)
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
