package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	chart "github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
)

// ReportController aggregates checked-out orders. Cancelled orders are
// excluded everywhere; active orders count only in the live snapshot.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type salesSummary struct {
	Orders         int64   `json:"orders"`
	ItemsTotal     float64 `json:"items_total"`
	DiscountAmount float64 `json:"discount_amount"`
	VatAmount      float64 `json:"vat_amount"`
	DeliveryCharge float64 `json:"delivery_charge"`
	Revenue        float64 `json:"revenue"`
	PaidAmount     float64 `json:"paid_amount"`
	DueAmount      float64 `json:"due_amount"`
}

type dailySales struct {
	Day     string  `json:"day"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type topItem struct {
	ItemID   uint    `json:"item_id"`
	ItemName string  `json:"item_name"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// GetSalesReport -> GET /reports/sales?from=&to=
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	p := principalFrom(c)
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	summary, err := rc.summary(p.RestaurantID, from, to)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	daily, err := rc.daily(p.RestaurantID, from, to)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var byMethod []struct {
		PaymentMethod string  `json:"payment_method"`
		Orders        int64   `json:"orders"`
		Revenue       float64 `json:"revenue"`
	}
	err = rc.DB.Raw(`
		SELECT payment_method, COUNT(*) AS orders, COALESCE(SUM(final_amount), 0) AS revenue
		FROM orders
		WHERE restaurant_id = ? AND status = ? AND checked_out_at >= ? AND checked_out_at < ?
		GROUP BY payment_method`,
		p.RestaurantID, models.OrderStatusCheckedOut, from, to).Scan(&byMethod).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Sales report", gin.H{
		"from":              from.Format("2006-01-02"),
		"to":                to.Format("2006-01-02"),
		"summary":           summary,
		"daily":             daily,
		"by_payment_method": byMethod,
	})
}

// GetTopItems -> GET /reports/top-items?from=&to=&limit=
func (rc *ReportController) GetTopItems(c *gin.Context) {
	p := principalFrom(c)
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	limit := 10
	if v := c.Query("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var items []topItem
	err = rc.DB.Raw(`
		SELECT oi.item_id, oi.item_name,
		       SUM(oi.quantity) AS quantity,
		       COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = ? AND o.status = ? AND o.checked_out_at >= ? AND o.checked_out_at < ?
		GROUP BY oi.item_id, oi.item_name
		ORDER BY quantity DESC
		LIMIT ?`,
		p.RestaurantID, models.OrderStatusCheckedOut, from, to, limit).Scan(&items).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Top items", items)
}

// GetSalesChart -> GET /reports/sales/chart, renders the daily revenue
// series as a PNG.
func (rc *ReportController) GetSalesChart(c *gin.Context) {
	p := principalFrom(c)
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	daily, err := rc.daily(p.RestaurantID, from, to)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(daily) == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no sales between %s and %s",
			from.Format("2006-01-02"), to.Format("2006-01-02")))
		return
	}

	xs := make([]time.Time, 0, len(daily))
	ys := make([]float64, 0, len(daily))
	for _, d := range daily {
		day, err := time.Parse("2006-01-02", d.Day)
		if err != nil {
			continue
		}
		xs = append(xs, day)
		ys = append(ys, d.Revenue)
	}

	graph := chart.Chart{
		Title:  "Daily Revenue",
		Width:  900,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "revenue",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// GetSalesPDF -> GET /reports/sales/pdf, a printable summary for the
// day-close routine.
func (rc *ReportController) GetSalesPDF(c *gin.Context) {
	p := principalFrom(c)
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	summary, err := rc.summary(p.RestaurantID, from, to)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	daily, err := rc.daily(p.RestaurantID, from, to)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var restaurant models.Restaurant
	rc.DB.First(&restaurant, p.RestaurantID)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "SALES REPORT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, restaurant.Name, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("%s - %s", from.Format("2006-01-02"), to.Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	rows := []struct {
		label string
		value string
	}{
		{"Orders", fmt.Sprintf("%d", summary.Orders)},
		{"Items Total", fmt.Sprintf("%.2f", summary.ItemsTotal)},
		{"Discount", fmt.Sprintf("%.2f", summary.DiscountAmount)},
		{"VAT", fmt.Sprintf("%.2f", summary.VatAmount)},
		{"Delivery", fmt.Sprintf("%.2f", summary.DeliveryCharge)},
		{"Revenue", fmt.Sprintf("%.2f", summary.Revenue)},
		{"Paid", fmt.Sprintf("%.2f", summary.PaidAmount)},
		{"Due", fmt.Sprintf("%.2f", summary.DueAmount)},
	}
	for _, row := range rows {
		pdf.CellFormat(120, 7, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row.value, "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Daily Breakdown", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, d := range daily {
		pdf.CellFormat(60, 7, d.Day, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, fmt.Sprintf("%d orders", d.Orders), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("%.2f", d.Revenue), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sales_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GetLiveSnapshot -> GET /reports/live, the floor view: active orders,
// occupied tables and outstanding dues right now.
func (rc *ReportController) GetLiveSnapshot(c *gin.Context) {
	p := principalFrom(c)

	var activeOrders, occupiedTables int64
	if err := rc.DB.Model(&models.Order{}).
		Where("restaurant_id = ? AND status = ?", p.RestaurantID, models.OrderStatusActive).
		Count(&activeOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := rc.DB.Model(&models.Table{}).
		Where("restaurant_id = ? AND status = ?", p.RestaurantID, models.TableOccupied).
		Count(&occupiedTables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var dues struct {
		Orders int64   `json:"orders"`
		Amount float64 `json:"amount"`
	}
	err := rc.DB.Raw(`
		SELECT COUNT(*) AS orders, COALESCE(SUM(due_amount), 0) AS amount
		FROM orders
		WHERE restaurant_id = ? AND status = ? AND due_amount > 0`,
		p.RestaurantID, models.OrderStatusActive).Scan(&dues).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Live snapshot", gin.H{
		"active_orders":   activeOrders,
		"occupied_tables": occupiedTables,
		"outstanding_due": dues,
	})
}

func (rc *ReportController) summary(restaurantID uint, from, to time.Time) (*salesSummary, error) {
	var s salesSummary
	err := rc.DB.Raw(`
		SELECT COUNT(*) AS orders,
		       COALESCE(SUM(items_total), 0) AS items_total,
		       COALESCE(SUM(discount_amount), 0) AS discount_amount,
		       COALESCE(SUM(vat_amount), 0) AS vat_amount,
		       COALESCE(SUM(delivery_charge), 0) AS delivery_charge,
		       COALESCE(SUM(final_amount), 0) AS revenue,
		       COALESCE(SUM(paid_amount), 0) AS paid_amount,
		       COALESCE(SUM(due_amount), 0) AS due_amount
		FROM orders
		WHERE restaurant_id = ? AND status = ? AND checked_out_at >= ? AND checked_out_at < ?`,
		restaurantID, models.OrderStatusCheckedOut, from, to).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (rc *ReportController) daily(restaurantID uint, from, to time.Time) ([]dailySales, error) {
	var daily []dailySales
	err := rc.DB.Raw(`
		SELECT DATE(checked_out_at) AS day,
		       COUNT(*) AS orders,
		       COALESCE(SUM(final_amount), 0) AS revenue
		FROM orders
		WHERE restaurant_id = ? AND status = ? AND checked_out_at >= ? AND checked_out_at < ?
		GROUP BY DATE(checked_out_at)
		ORDER BY day`,
		restaurantID, models.OrderStatusCheckedOut, from, to).Scan(&daily).Error
	if err != nil {
		return nil, err
	}
	return daily, nil
}
