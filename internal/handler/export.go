package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"rental-manager/internal/models"
	"rental-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the payment ledger as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) queryPayments(c *gin.Context) ([]models.Payment, bool) {
	q := h.DB.Model(&models.Payment{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		t, err := util.ParseDate(from)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid from date")
			return nil, false
		}
		q = q.Where("transaction_date >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := util.ParseDate(to)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid to date")
			return nil, false
		}
		q = q.Where("transaction_date < ?", t.AddDate(0, 0, 1))
	}

	var payments []models.Payment
	if err := q.Order("transaction_date DESC, id DESC").Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query payments")
		return nil, false
	}
	return payments, true
}

var exportHeaders = []string{"Receipt", "Lease ID", "Amount (ETB)", "Method", "Status", "External Txn", "Date"}

func exportRow(p models.Payment) []string {
	return []string{
		p.ReceiptNumber,
		strconv.FormatUint(uint64(p.LeaseID), 10),
		strconv.FormatInt(p.AmountEtb, 10),
		p.PaymentMethod,
		string(p.Status),
		p.ExternalTransactionID,
		p.TransactionDate.Format("2006-01-02"),
	}
}

// ExportPaymentsCSV streams the ledger as CSV.
func (h *ExportHandler) ExportPaymentsCSV(c *gin.Context) {
	payments, ok := h.queryPayments(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"payments_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, p := range payments {
		writer.Write(exportRow(p))
	}
}

// ExportPaymentsXLSX streams the ledger as an XLSX workbook.
func (h *ExportHandler) ExportPaymentsXLSX(c *gin.Context) {
	payments, ok := h.queryPayments(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Payments"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, head := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}
	for idx, p := range payments {
		row := idx + 2
		for col, val := range exportRow(p) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 24)
	f.SetColWidth(sheetName, "G", "G", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"payments_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
