package catalog

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type exportRow struct {
	Article    string `csv:"article"`
	Name       string `csv:"name"`
	Category   string `csv:"category"`
	Supplier   string `csv:"supplier"`
	Cost       string `csv:"cost"`
	Discount   int    `csv:"discount"`
	FinalPrice string `csv:"final_price"`
	Quantity   int    `csv:"quantity"`
}

// ExportCSV writes rows with a header line
func ExportCSV(w io.Writer, rows []Row) error {
	out := make([]*exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, &exportRow{
			Article:    r.Article,
			Name:       r.Name,
			Category:   r.Category,
			Supplier:   r.Supplier,
			Cost:       decimal.NewFromFloat(r.Cost).StringFixed(2),
			Discount:   r.Discount,
			FinalPrice: r.FinalPrice.StringFixed(2),
			Quantity:   r.Quantity,
		})
	}
	return errors.Wrap(gocsv.Marshal(&out, w), "write csv")
}
