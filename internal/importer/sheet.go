package importer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// readRows returns the raw cell values of the active worksheet.
func readRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, errors.Errorf("%s: no worksheet found", path)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return rows, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// toInt reads base 10 only: "0123" is 123 and "0x1F" is rejected.
// Whole floats such as "15.0" are accepted.
func toInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, errors.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}

func toFloat(s string) (float64, error) {
	return cast.ToFloat64E(strings.Replace(s, ",", ".", 1))
}

var dateLayouts = []string{"2.1.2006", "2006-1-2"}

// normalizeDate renders s as YYYY-MM-DD. Day.month.year and year-month-day are tried
// first, then spreadsheet serial numbers and other day-first renderings. Anything
// unparseable comes back unchanged.
func normalizeDate(s string) string {
	v := strings.TrimSpace(s)
	if v == "" {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil && serial > 0 {
			return t.Format(time.DateOnly)
		}
		return s
	}
	if t, err := dateparse.ParseAny(v, dateparse.PreferMonthFirst(false)); err == nil {
		return t.Format(time.DateOnly)
	}
	return s
}
