package bill

import (
	"time"

	"github.com/iteranya/restaurant-pos/internal/entities/order"
	"github.com/iteranya/restaurant-pos/internal/utils"
)

// TaxPercent is applied to the subtotal of every bill.
const TaxPercent = 5

type Summary struct {
	OrderCount int
	TotalItems int
	Subtotal   utils.Money
	Tax        utils.Money
	GrandTotal utils.Money
}

// Summarize totals orders. The tax is rounded half up to the cent.
func Summarize(orders []*order.Order) Summary {
	var s Summary
	for _, o := range orders {
		s.OrderCount++
		s.TotalItems += o.Quantity
		s.Subtotal += o.Total
	}
	s.Tax = s.Subtotal.Percent(TaxPercent)
	s.GrandTotal = s.Subtotal + s.Tax
	return s
}

type Bill struct {
	Orders  []*order.Order
	Summary Summary
}

// Sale is the snapshot written when a bill is finalized for a customer.
type Sale struct {
	Id            int         `db:"id"`
	Subtotal      utils.Money `db:"subtotal"`
	Tax           utils.Money `db:"tax"`
	GrandTotal    utils.Money `db:"grand_total"`
	CustomerName  string      `db:"customer_name"`
	CustomerPhone string      `db:"customer_phone"`
	Date          time.Time   `db:"sold_on"`
}

// SalesHistory lists finalized bills newest first with their running sums.
type SalesHistory struct {
	Sales      []*Sale
	Tax        utils.Money
	GrandTotal utils.Money
}

func SummarizeSales(sales []*Sale) SalesHistory {
	h := SalesHistory{Sales: sales}
	for _, s := range sales {
		h.Tax += s.Tax
		h.GrandTotal += s.GrandTotal
	}
	return h
}
