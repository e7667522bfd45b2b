package controllers

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/paybridge/nochex/config"
	"github.com/paybridge/nochex/gateway"
	"github.com/paybridge/nochex/models"
	"github.com/paybridge/nochex/utils"
)

// GET /orders/:id/receipt
//
// DownloadReceipt generates a PDF payment receipt for a paid order.
func DownloadReceipt(c *gin.Context) {
	utils.LogInfo("DownloadReceipt called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID in receipt request: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("BillingAddress").First(&order, orderID).Error; err != nil {
		utils.LogError("Order not found for receipt - Order ID: %d", orderID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentStatus != models.PaymentStatusPaid {
		utils.LogError("Receipt requested for unpaid order ID: %d, status: %s", order.ID, order.PaymentStatus)
		utils.BadRequest(c, "Receipt is only available for paid orders", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "Payment Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Cell(80, 8, "Order Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	if order.PaidAt != nil {
		pdf.Cell(60, 8, "Paid: "+order.PaidAt.Format("2006-01-02 15:04:05"))
		pdf.Ln(8)
	}
	pdf.Cell(100, 8, "Transaction Reference: "+order.AuthorizationTransactionID)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	billing := order.BillingAddress
	pdf.Cell(100, 8, billing.FullName())
	pdf.Ln(6)
	pdf.Cell(100, 8, billing.Lines())
	pdf.Ln(6)
	pdf.Cell(100, 8, billing.City+" "+billing.PostalCode)
	pdf.Ln(6)
	pdf.Cell(100, 8, billing.Email)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(100, 10, "Amount Paid: "+gateway.FormatAmount(order.TotalAmount))
	pdf.Ln(10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-order-%d.pdf", order.ID))
	c.Data(200, "application/pdf", buf.Bytes())
}
