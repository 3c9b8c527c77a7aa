package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `order_id,customer_id,state,city,lga,product_id,name,price,quantity
ord-1,cus-1,Edo,Benin City,Oredo,sku-a,Rice,8500,1
ord-1,cus-1,Edo,Benin City,Oredo,sku-b,Oil,2200,2
ord-2,cus-2,Lagos,Ikeja,Ikeja,sku-c,Beans,4500,1
`

func TestReadOrders_GroupsLinesByOrder(t *testing.T) {
	orders, err := readOrders(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "ord-1", orders[0].OrderID)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Benin City", orders[0].ShippingAddress.City)
	assert.Equal(t, "ord-2", orders[1].OrderID)
	assert.Equal(t, baseDate, orders[1].PlacedAt)
}

func TestReadOrders_Errors(t *testing.T) {
	_, err := readOrders(strings.NewReader("order_id,state\n"))
	assert.ErrorContains(t, err, "no data rows")

	_, err = readOrders(strings.NewReader("order_id,state,price,quantity\no,Edo,1,1\n"))
	assert.ErrorContains(t, err, `missing column "product_id"`)

	_, err = readOrders(strings.NewReader("order_id,state,product_id,price,quantity\no,Edo,p,abc,1\n"))
	assert.ErrorContains(t, err, "line 2: invalid price")
}

func TestQuoteAll(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(baseDate))
	t.Cleanup(func() { domain.SetClock(nil) })

	orders, err := readOrders(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	quotes, err := quoteAll(orders)
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, 12900, quotes[0].Subtotal)
	assert.Equal(t, 1500, quotes[0].DeliveryFee)
	assert.Equal(t, 14400, quotes[0].Total)
	assert.Equal(t, domain.AddressProvided, quotes[0].AddressSource)
	assert.Equal(t, domain.ZoneSouthern, quotes[1].ZoneID)

	var out bytes.Buffer
	printStats(&out, quotes)
	assert.Contains(t, out.String(), "Zone Breakdown (2 orders)")
	assert.Contains(t, out.String(), "Same City")
}
