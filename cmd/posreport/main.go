package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"

	"github.com/iteranya/restaurant-pos/internal/config"
	"github.com/iteranya/restaurant-pos/internal/database"
	"github.com/iteranya/restaurant-pos/internal/entities/bill"
	"github.com/iteranya/restaurant-pos/internal/entities/customer"
	"github.com/iteranya/restaurant-pos/internal/entities/order"
	"github.com/iteranya/restaurant-pos/internal/logging"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	wipe := flag.Bool("clear", false, "wipe order history and sales after printing")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("could not load configuration")
	}
	log := logging.ForPackage(logging.New(cfg.LogLevel, cfg.LogFormat), "posreport")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewDatabase(ctx, cfg.DatabaseConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize database")
	}
	defer db.Close()

	svc := bill.NewBillService(
		order.NewOrderRepository(db),
		customer.NewCustomerRepository(db),
		bill.NewSaleRepository(db),
		database.NewTxManager(db),
	)

	b, err := svc.Current(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build report")
	}

	if err := printReport(os.Stdout, b); err != nil {
		log.Fatal().Err(err).Msg("could not print report")
	}

	sales, err := svc.History(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("could not list sales")
	}
	if err := printSales(os.Stdout, sales); err != nil {
		log.Fatal().Err(err).Msg("could not print sales")
	}

	if *wipe {
		orders, sales, err := svc.ClearHistory(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not clear history")
		}
		fmt.Printf("cleared %d orders and %d sales\n", orders, sales)
	}
}

func printReport(w io.Writer, b *bill.Bill) error {
	orders := tablewriter.NewWriter(w)
	orders.Header("Date", "Item", "Qty", "Total")
	for _, o := range b.Orders {
		if err := orders.Append([]string{
			o.Date.Format("2006-01-02"),
			o.ItemName,
			strconv.Itoa(o.Quantity),
			o.Total.String(),
		}); err != nil {
			return err
		}
	}
	orders.Footer("", "Items", strconv.Itoa(b.Summary.TotalItems), b.Summary.Subtotal.String())
	if err := orders.Render(); err != nil {
		return err
	}

	summary := tablewriter.NewWriter(w)
	summary.Header("Orders", "Subtotal", "Tax (5%)", "Grand total")
	if err := summary.Append([]string{
		strconv.Itoa(b.Summary.OrderCount),
		b.Summary.Subtotal.String(),
		b.Summary.Tax.String(),
		b.Summary.GrandTotal.String(),
	}); err != nil {
		return err
	}
	return summary.Render()
}

// printSales lists finalized bills, newest first.
func printSales(w io.Writer, h *bill.SalesHistory) error {
	t := tablewriter.NewWriter(w)
	t.Header("Date", "Customer", "Phone", "Tax", "Grand total")
	for _, s := range h.Sales {
		if err := t.Append([]string{
			s.Date.Format("2006-01-02"),
			s.CustomerName,
			s.CustomerPhone,
			s.Tax.String(),
			s.GrandTotal.String(),
		}); err != nil {
			return err
		}
	}
	t.Footer("", "Bills", strconv.Itoa(len(h.Sales)), h.Tax.String(), h.GrandTotal.String())
	return t.Render()
}
