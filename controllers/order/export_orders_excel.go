package orderControllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/junaidrashid-git/charm-studio-api/checkout"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

var orderSheetHeaders = []string{
	"OrderRef", "UserID", "Status", "TotalAmount", "Line", "BraceletID",
	"CharmIDs", "HasPreview", "CreatedAt",
}

// WriteOrdersSheet writes one row per order line.
func WriteOrdersSheet(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range orderSheetHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		for _, l := range o.Lines {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderRef)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(l.Seq + 1)
			row.AddCell().SetValue(l.BraceletID)

			var charmIDs []string
			for _, it := range l.Items {
				charmIDs = append(charmIDs, strconv.FormatUint(uint64(it.CharmID), 10))
			}
			row.AddCell().SetValue(strings.Join(charmIDs, ","))
			row.AddCell().SetValue(l.PreviewImage != "")
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return file.Write(w)
}

// GET /admin/orders/export-excel
func ExportOrdersToExcel(store *checkout.GormStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := store.ListOrders(c.Request.Context(), "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := WriteOrdersSheet(c.Writer, orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
