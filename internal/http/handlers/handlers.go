package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/salesops-hq/backend/internal/db"
	"github.com/salesops-hq/backend/internal/identity"
	"github.com/salesops-hq/backend/internal/models"
	"github.com/salesops-hq/backend/internal/records"
	"github.com/salesops-hq/backend/internal/service"
	"github.com/salesops-hq/backend/internal/utils"
)

type Handler struct {
	Store     *db.Store
	Records   records.Source
	Identity  identity.Provider
	Composer  *service.Composer
	Validator *validator.Validate
	Logger    zerolog.Logger
	AdminKey  string

	// Now is overridable in tests; the engine itself never reads the clock.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

type ImportSummary struct {
	Parsed   int      `json:"parsed"`
	Inserted int      `json:"inserted"`
	Errors   []string `json:"errors"`
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Import activity feed
// @Description Replace the stored activity feed with an uploaded CSV
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param activities formData file true "activities.csv"
// @Success 200 {object} ImportSummary
// @Failure 400 {object} map[string]any
// @Router /api/import [post]
func (h *Handler) Import(c *gin.Context) {
	file, err := c.FormFile("activities")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "activities file required", nil)
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "file must be .csv", nil)
		return
	}

	rows, errs := parseActivitiesCSV(file, h.now())
	summary := ImportSummary{Parsed: len(rows), Errors: errs}
	if len(errs) > 0 {
		writeError(c, http.StatusBadRequest, "CSV_PARSE_ERROR", "CSV validation errors", errs)
		return
	}

	inserted, err := h.Store.ReplaceActivities(c.Request.Context(), rows)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to import activities", err.Error())
		return
	}
	summary.Inserted = int(inserted)
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ActivitiesList(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Store.ListActivities(c.Request.Context(), q, limit, offset)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list activities", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

type metricsQuery struct {
	Role        string `form:"role"`
	ReferenceID string `form:"reference_id"`
	Start       string `form:"start" validate:"omitempty,datetime=2006-01-02"`
	End         string `form:"end" validate:"omitempty,datetime=2006-01-02"`
	Preset      string `form:"preset" validate:"omitempty,oneof=today yesterday last7days last30days thismonth lastmonth"`
}

// @Summary Dashboard metrics
// @Description Funnel, call productivity, and time-motion rollups scoped to the viewer
// @Tags metrics
// @Produce json
// @Param role query string false "Viewer role (when no bearer token)"
// @Param reference_id query string false "Viewer reference id"
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD)"
// @Param preset query string false "Named window preset"
// @Success 200 {object} map[string]any
// @Router /api/metrics/dashboard [get]
func (h *Handler) MetricsDashboard(c *gin.Context) {
	report, ok := h.compose(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) MetricsFunnel(c *gin.Context) {
	report, ok := h.compose(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Funnel)
}

func (h *Handler) MetricsCallProductivity(c *gin.Context) {
	report, ok := h.compose(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.CallProductivity)
}

func (h *Handler) MetricsTimeMotion(c *gin.Context) {
	report, ok := h.compose(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.TimeMotion)
}

// MetricsPresets materializes every named window for today so clients can
// render the range picker without duplicating the preset math.
func (h *Handler) MetricsPresets(c *gin.Context) {
	now := h.now()
	out := gin.H{}
	for _, name := range []string{
		service.PresetToday, service.PresetYesterday,
		service.PresetLast7Days, service.PresetLast30Days,
		service.PresetThisMonth, service.PresetLastMonth,
	} {
		w, _ := service.PresetWindow(name, now)
		out[name] = w
	}
	c.JSON(http.StatusOK, out)
}

// compose resolves the viewer and window from the request, pulls the current
// snapshot, and runs the metrics pipeline. It writes the error response
// itself and reports success through the second return.
func (h *Handler) compose(c *gin.Context) (service.Report, bool) {
	var q metricsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", err.Error())
		return service.Report{}, false
	}
	if err := h.Validator.Struct(q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", err.Error())
		return service.Report{}, false
	}

	viewer, err := h.resolveViewer(c, q)
	if err != nil {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Viewer context required", err.Error())
		return service.Report{}, false
	}

	now := h.now()
	window, err := resolveWindow(q, now)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date window", err.Error())
		return service.Report{}, false
	}

	raw, version, err := h.Records.Snapshot(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("snapshot fetch failed")
		writeError(c, http.StatusBadGateway, "SNAPSHOT_ERROR", "Failed to load activity snapshot", err.Error())
		return service.Report{}, false
	}

	return h.Composer.ComposeVersioned(version, raw, viewer, window, now), true
}

func (h *Handler) resolveViewer(c *gin.Context, q metricsQuery) (models.Viewer, error) {
	if auth := c.GetHeader("Authorization"); auth != "" {
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		return h.Identity.Resolve(c.Request.Context(), token)
	}
	if q.Role == "" {
		return models.Viewer{}, errors.New("role or bearer token required")
	}
	return models.Viewer{Role: q.Role, ReferenceID: q.ReferenceID}, nil
}

func resolveWindow(q metricsQuery, now time.Time) (models.DateWindow, error) {
	if q.Preset != "" {
		w, ok := service.PresetWindow(q.Preset, now)
		if !ok {
			return models.DateWindow{}, fmt.Errorf("unknown preset %q", q.Preset)
		}
		return w, nil
	}

	var w models.DateWindow
	if q.Start != "" {
		start, err := time.Parse("2006-01-02", q.Start)
		if err != nil {
			return models.DateWindow{}, err
		}
		w.Start = &start
	}
	if q.End != "" {
		end, err := time.Parse("2006-01-02", q.End)
		if err != nil {
			return models.DateWindow{}, err
		}
		// The end date is inclusive through its last instant.
		last := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		w.End = &last
	}
	if w.Start != nil && w.End != nil && w.End.Before(*w.Start) {
		return models.DateWindow{}, errors.New("end precedes start")
	}
	return w, nil
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Feed CSV columns. The id column is optional; absent ids are derived from
// the row contents so re-imports stay stable.
var activityCSVColumns = []string{
	"id", "companyname", "contactperson", "contactnumber",
	"referenceid", "manager", "tsm",
	"source", "typeactivity", "callstatus", "activitystatus",
	"quotationnumber", "quotationamount", "sonumber", "soamount", "actualsales",
	"date_created", "startdate", "enddate",
}

func parseActivitiesCSV(file *multipart.FileHeader, importedAt time.Time) ([]db.ActivityRow, []string) {
	f, err := file.Open()
	if err != nil {
		return nil, []string{err.Error()}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, []string{"empty or unreadable CSV"}
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"companyname", "referenceid", "date_created"} {
		if _, ok := index[required]; !ok {
			return nil, []string{fmt.Sprintf("missing required column %q", required)}
		}
	}

	cell := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []db.ActivityRow
	var errs []string
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		row := db.ActivityRow{
			ID:              cell(record, "id"),
			CompanyName:     cell(record, "companyname"),
			ContactPerson:   cell(record, "contactperson"),
			ContactNumber:   cell(record, "contactnumber"),
			ReferenceID:     cell(record, "referenceid"),
			Manager:         cell(record, "manager"),
			TSM:             cell(record, "tsm"),
			Source:          cell(record, "source"),
			TypeActivity:    cell(record, "typeactivity"),
			CallStatus:      cell(record, "callstatus"),
			ActivityStatus:  cell(record, "activitystatus"),
			QuotationNumber: cell(record, "quotationnumber"),
			QuotationAmount: cell(record, "quotationamount"),
			SONumber:        cell(record, "sonumber"),
			SOAmount:        cell(record, "soamount"),
			ActualSales:     cell(record, "actualsales"),
			DateCreated:     cell(record, "date_created"),
			StartDate:       cell(record, "startdate"),
			EndDate:         cell(record, "enddate"),
			ImportedAt:      importedAt,
		}
		if row.CompanyName == "" && row.ReferenceID == "" {
			errs = append(errs, fmt.Sprintf("line %d: blank row", line))
			continue
		}
		if row.ID == "" {
			row.ID = deriveRowID(record)
		}
		rows = append(rows, row)
	}
	return rows, errs
}

func deriveRowID(record []string) string {
	return fmt.Sprintf("act_%016x", utils.HashStringToUint64(strings.Join(record, "|")))
}
