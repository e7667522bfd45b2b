package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/paybridge/nochex/config"
	"github.com/paybridge/nochex/models"
	"github.com/paybridge/nochex/utils"
)

// GET /admin/callbacks?period=day|week|month
//
// Lists received APC callbacks so rejected ones can be reconciled
// against the Nochex merchant account.
func ListCallbacks(c *gin.Context) {
	utils.LogInfo("ListCallbacks called")

	startDate, endDate, err := reportRange(c.DefaultQuery("period", "day"))
	if err != nil {
		utils.BadRequest(c, "Invalid period", err.Error())
		return
	}

	var records []models.CallbackRecord
	if err := config.DB.
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		utils.LogError("Failed to fetch callback records: %v", err)
		utils.InternalServerError(c, "Failed to fetch callbacks", err.Error())
		return
	}

	utils.Success(c, "Callbacks retrieved successfully", gin.H{
		"callbacks": records,
		"count":     len(records),
	})
}

// GET /admin/callbacks/export?period=day|week|month
//
// Downloads the same range as an Excel workbook.
func ExportCallbacksExcel(c *gin.Context) {
	utils.LogInfo("ExportCallbacksExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, err := reportRange(period)
	if err != nil {
		utils.BadRequest(c, "Invalid period", err.Error())
		return
	}

	var records []models.CallbackRecord
	if err := config.DB.
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		utils.LogError("Failed to fetch callback records: %v", err)
		utils.InternalServerError(c, "Failed to fetch callbacks", err.Error())
		return
	}
	utils.LogDebug("Exporting %d callback records", len(records))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("APC Callbacks")
	if err != nil {
		utils.LogError("Failed to create sheet: %v", err)
		utils.InternalServerError(c, "Failed to generate export", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Received", "Order GUID", "Transaction ID", "Status", "Outcome", "Reason"} {
		header.AddCell().Value = title
	}

	for _, record := range records {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprintf("%d", record.ID)
		row.AddCell().Value = record.CreatedAt.Format("2006-01-02 15:04:05")
		row.AddCell().Value = record.OrderGUID
		row.AddCell().Value = record.TransactionID
		row.AddCell().Value = record.Status
		row.AddCell().Value = record.Outcome
		row.AddCell().Value = record.Reason
	}

	filename := fmt.Sprintf("nochex-callbacks-%s-%s.xlsx", period, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel export: %v", err)
	}
}

// reportRange maps a period keyword onto a date window.
func reportRange(period string) (time.Time, time.Time, error) {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	switch period {
	case "day":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), end, nil
	case "week":
		start := end.AddDate(0, 0, -6)
		return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()), end, nil
	case "month":
		start := end.AddDate(0, -1, 0)
		return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()), end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("period must be day, week, or month")
	}
}
