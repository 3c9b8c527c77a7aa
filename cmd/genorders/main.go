// Command genorders reads a CSV of sample order lines and generates JSON
// fixtures for the order pipeline: the orders-placed payloads and the quotes
// the pipeline is expected to produce for them. It uses the domain package
// directly so the expected output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genorders \
//	  -csv testdata/orders.csv \
//	  -orders-out testdata/orders_placed.json \
//	  -quotes-out testdata/orders_quoted.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Orders are placed and quoted on a fixed Friday morning so fixtures are
// reproducible.
var baseDate = time.Date(2025, time.January, 17, 9, 0, 0, 0, time.UTC)

var requiredColumns = []string{"order_id", "state", "product_id", "price", "quantity"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "CSV file of order lines")
	ordersOut := flag.String("orders-out", "", "output path for orders-placed JSON fixture")
	quotesOut := flag.String("quotes-out", "", "output path for orders-quoted JSON fixture")
	flag.Parse()

	if *csvPath == "" || *ordersOut == "" || *quotesOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -orders-out, -quotes-out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(baseDate))
	defer domain.SetClock(nil)

	f, err := os.Open(*csvPath)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	orders, err := readOrders(f)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}
	log.Printf("read %d orders", len(orders))

	quotes, err := quoteAll(orders)
	if err != nil {
		return err
	}

	if err := writeJSON(*ordersOut, orders); err != nil {
		return fmt.Errorf("writing orders fixture: %w", err)
	}
	log.Printf("wrote orders fixture: %s", *ordersOut)

	if err := writeJSON(*quotesOut, quotes); err != nil {
		return fmt.Errorf("writing quotes fixture: %w", err)
	}
	log.Printf("wrote quotes fixture: %s", *quotesOut)

	printStats(os.Stdout, quotes)
	return nil
}

// readOrders groups CSV rows by order_id into orders, one line item per row.
// Orders keep the order of their first row.
func readOrders(r io.Reader) ([]domain.OrderPlaced, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var orders []domain.OrderPlaced
	index := map[string]int{}

	for n, row := range rows[1:] {
		line := n + 2
		price, err := strconv.Atoi(get(row, colIdx, "price"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
		}
		qty, err := strconv.Atoi(get(row, colIdx, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity: %w", line, err)
		}
		item := domain.LineItem{
			ProductID: get(row, colIdx, "product_id"),
			Name:      get(row, colIdx, "name"),
			Price:     price,
			Quantity:  qty,
		}

		id := get(row, colIdx, "order_id")
		if i, ok := index[id]; ok {
			orders[i].Items = append(orders[i].Items, item)
			continue
		}
		index[id] = len(orders)
		orders = append(orders, domain.OrderPlaced{
			OrderID:    id,
			CustomerID: get(row, colIdx, "customer_id"),
			Items:      []domain.LineItem{item},
			ShippingAddress: domain.Address{
				State: get(row, colIdx, "state"),
				City:  get(row, colIdx, "city"),
				LGA:   get(row, colIdx, "lga"),
			},
			PlacedAt: baseDate,
		})
	}
	return orders, nil
}

// quoteAll runs each order through the same parse and quote steps as the
// pipeline.
func quoteAll(orders []domain.OrderPlaced) ([]domain.QuotedOrder, error) {
	quotes := make([]domain.QuotedOrder, 0, len(orders))
	for _, o := range orders {
		payload, err := json.Marshal(o)
		if err != nil {
			return nil, fmt.Errorf("marshal order %s: %w", o.OrderID, err)
		}
		parsed, err := domain.ParseOrderEvent(domain.RawEvent{Key: []byte(o.OrderID), Value: payload, Timestamp: baseDate})
		if err != nil {
			return nil, err
		}
		parsed.AddressSource = domain.AddressProvided
		q, err := domain.QuoteOrder(parsed)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// zoneStats holds per-zone order counts and fee revenue for printStats.
type zoneStats struct {
	orders int
	fees   int
}

func printStats(w io.Writer, quotes []domain.QuotedOrder) {
	stats := map[string]*zoneStats{}
	for _, q := range quotes {
		s, ok := stats[q.Zone]
		if !ok {
			s = &zoneStats{}
			stats[q.Zone] = s
		}
		s.orders++
		s.fees += q.DeliveryFee
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "\n=== Zone Breakdown (%d orders) ===\n", len(quotes))
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %4d orders  ₦%d in delivery fees\n", name, stats[name].orders, stats[name].fees)
	}
}
