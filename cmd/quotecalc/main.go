// Command quotecalc prints the delivery quote for a single shipping address:
// zone, fee, delivery window, and projected delivery date.
//
// Usage:
//
//	go run ./cmd/quotecalc -state Edo -city "Benin City" -lga Oredo
//	go run ./cmd/quotecalc -state Lagos -today 2025-01-17 -json
//	go run ./cmd/quotecalc -zones
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

const dateFlagLayout = "2006-01-02"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("quotecalc", flag.ContinueOnError)
	state := fs.String("state", "", "destination state")
	city := fs.String("city", "", "destination city")
	lga := fs.String("lga", "", "destination local government area")
	today := fs.String("today", "", "quote as of this date (YYYY-MM-DD) instead of now")
	asJSON := fs.Bool("json", false, "print the quote as JSON")
	listZones := fs.Bool("zones", false, "print the zone table and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *listZones {
		return printZones(out)
	}

	if *today != "" {
		day, err := time.ParseInLocation(dateFlagLayout, *today, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -today %q: %w", *today, err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(day))
		defer domain.SetClock(nil)
	}

	q := domain.QuoteDelivery(domain.Address{State: *state, City: *city, LGA: *lga})

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Zone:\t%s (%s)\n", q.Zone, q.ZoneID)
	fmt.Fprintf(tw, "Fee:\t₦%d\n", q.Fee)
	fmt.Fprintf(tw, "Window:\t%s\n", q.Estimate.DisplayText)
	fmt.Fprintf(tw, "Estimated delivery:\t%s\n", domain.FormatDeliveryDate(q.Estimate.EstimatedDate))
	return tw.Flush()
}

func printZones(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFEE\tWINDOW")
	for _, z := range domain.Zones() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d–%d days\n", z.ID, z.Name, z.Fee, z.MinDays, z.MaxDays)
	}
	return tw.Flush()
}
