package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taxpal/taxpal-api/middleware"
	"github.com/taxpal/taxpal-api/models"
	"github.com/taxpal/taxpal-api/services"
	"github.com/taxpal/taxpal-api/utils"
)

type ReportHandler struct {
	DB      *sql.DB
	Svc     *services.ReportService
	Storage *services.StorageService
	WS      *WSHandler
}

var formatExtensions = map[string]string{
	models.FormatPDF:  ".pdf",
	models.FormatDOCX: ".docx",
	models.FormatCSV:  ".csv",
	models.FormatXLSX: ".xlsx",
}

// Create runs the full pipeline: resolve the period, pull the records,
// aggregate, render in the requested format, upload, then persist the
// report's metadata.
func (h *ReportHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !services.ValidReportType(req.ReportType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report type"})
		return
	}

	now := time.Now()
	periodRange, err := services.GetPeriodRange(req.Period, now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var country string
	err = h.DB.QueryRowContext(c.Request.Context(),
		"SELECT country FROM users WHERE id = $1", userID).Scan(&country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var data *services.ReportData
	if services.IsTaxReport(req.ReportType) {
		estimations, err := h.Svc.SelectTaxEstimations(c.Request.Context(), userID, periodRange)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if len(estimations) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "No data found for the selected criteria"})
			return
		}
		data = services.BuildTaxReportData(req.ReportType, req.Period, periodRange, country, estimations, now)
	} else {
		transactions, err := h.Svc.SelectTransactions(c.Request.Context(), userID, req.ReportType, periodRange)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if len(transactions) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "No data found for the selected criteria"})
			return
		}
		data = services.BuildReportData(req.ReportType, req.Period, periodRange, country, transactions, now)
	}

	var fileBytes []byte
	switch req.Format {
	case models.FormatPDF:
		fileBytes, err = services.RenderPDF(data)
	case models.FormatDOCX:
		fileBytes, err = services.RenderDOCX(data)
	case models.FormatCSV:
		fileBytes, err = services.RenderCSV(services.BuildExportTable(req.ReportType, data))
	case models.FormatXLSX:
		fileBytes, err = services.RenderXLSX(req.ReportType, services.BuildExportTable(req.ReportType, data))
	}
	if err != nil {
		utils.LogReportAction("render failed", req.ReportType, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	fileName := strings.ReplaceAll(req.ReportType, " ", "_") + "-" +
		strconv.FormatInt(now.UnixMilli(), 10) + formatExtensions[req.Format]

	reportURL, err := h.Storage.Upload(c.Request.Context(), fileBytes, fileName)
	if err != nil {
		utils.LogReportAction("upload failed", req.ReportType, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload report"})
		return
	}

	report := models.Report{
		UserID:       userID,
		GeneratedAt:  now,
		ReportType:   req.ReportType,
		ReportPeriod: data.Period,
		ReportFormat: req.Format,
		ReportURL:    reportURL,
		QuarterLabel: data.QuarterLabel,
	}
	err = h.DB.QueryRowContext(c.Request.Context(), `
		INSERT INTO reports (user_id, generated_at, report_type, report_period, report_format, report_url, quarter_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, userID, now, req.ReportType, data.Period, req.Format, reportURL, data.QuarterLabel).
		Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	utils.LogReportAction("generated", req.ReportType, userID)
	if h.WS != nil {
		h.WS.BroadcastUpdate(userID, "reports")
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Report generated successfully", "report": report})
}

func (h *ReportHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	rows, err := h.DB.QueryContext(c.Request.Context(), `
		SELECT id, user_id, generated_at, report_type, report_period, report_format, report_url, COALESCE(quarter_label, ''), created_at
		FROM reports
		WHERE user_id = $1
		ORDER BY generated_at DESC
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.UserID, &r.GeneratedAt, &r.ReportType, &r.ReportPeriod, &r.ReportFormat, &r.ReportURL, &r.QuarterLabel, &r.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Delete removes the stored file first, then the metadata row. A file the
// storage provider no longer has still counts as deleted; a metadata
// failure after a successful file delete is surfaced as a partial delete.
func (h *ReportHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.DeleteReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !services.IsValidStorageURL(req.ReportURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report URL"})
		return
	}

	var reportID string
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT id FROM reports WHERE user_id = $1 AND report_url = $2", userID, req.ReportURL).Scan(&reportID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	publicID := services.ExtractPublicID(req.ReportURL)
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report URL"})
		return
	}

	if err := h.Storage.Delete(c.Request.Context(), publicID); err != nil {
		utils.LogReportAction("file delete failed", publicID, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report file"})
		return
	}

	if _, err := h.DB.ExecContext(c.Request.Context(),
		"DELETE FROM reports WHERE id = $1 AND user_id = $2", reportID, userID); err != nil {
		utils.LogReportAction("metadata delete failed", reportID, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report partially deleted. Please contact support."})
		return
	}

	utils.LogReportAction("deleted", reportID, userID)
	if h.WS != nil {
		h.WS.BroadcastUpdate(userID, "reports")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}
