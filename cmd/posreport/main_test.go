package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iteranya/restaurant-pos/internal/entities/bill"
	"github.com/iteranya/restaurant-pos/internal/entities/order"
)

func TestPrintReport(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	orders := []*order.Order{
		{Id: 1, ItemName: "Biryani", Quantity: 1, Total: 1000, Date: day},
		{Id: 2, ItemName: "Naan", Quantity: 4, Total: 2000, Date: day},
		{Id: 3, ItemName: "Lassi", Quantity: 2, Total: 550, Date: day},
	}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, &bill.Bill{Orders: orders, Summary: bill.Summarize(orders)}))

	out := buf.String()
	assert.Contains(t, out, "2026-03-14")
	assert.Contains(t, out, "Lassi")
	assert.Contains(t, out, "35.50")
	assert.Contains(t, out, "1.78")
	assert.Contains(t, out, "37.28")
}

func TestPrintReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, &bill.Bill{}))
	assert.Contains(t, buf.String(), "0.00")
}

func TestPrintSales(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	h := bill.SummarizeSales([]*bill.Sale{
		{Id: 2, CustomerName: "Asha", CustomerPhone: "9123456780", Tax: 50, GrandTotal: 1050, Date: day},
		{Id: 1, CustomerName: "Ravi Kumar", CustomerPhone: "9876543210", Tax: 178, GrandTotal: 3728, Date: day},
	})

	var buf bytes.Buffer
	require.NoError(t, printSales(&buf, &h))

	out := buf.String()
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "9876543210")
	assert.Contains(t, out, "2.28")
	assert.Contains(t, out, "47.78")
}

func TestPrintSales_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSales(&buf, &bill.SalesHistory{}))
	assert.Contains(t, buf.String(), "0.00")
}
