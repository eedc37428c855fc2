package directory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"StockWatch/internal/model"
)

// ErrDataFileMissing indicates the backing ticker file is absent. It is
// fatal at startup; the service never runs with a silently empty directory.
var ErrDataFileMissing = errors.New("ticker data file missing")

// Directory is the in-memory symbol/company table, loaded once at startup
// and read-only thereafter, so concurrent reads need no synchronization.
type Directory struct {
	bySymbol map[string]string
	records  []model.TickerRecord
}

// Load reads the ticker CSV. The file must have a header row; the symbol and
// company columns are located by header name ("ACT Symbol"/"Symbol" and
// "Company Name"/"Company").
func Load(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDataFileMissing, path)
		}
		return nil, fmt.Errorf("open ticker file: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Directory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read ticker header: %w", err)
	}
	symCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "ACT Symbol", "Symbol", "Ticker":
			if symCol < 0 {
				symCol = i
			}
		case "Company Name", "Company", "Name":
			if nameCol < 0 {
				nameCol = i
			}
		}
	}
	if symCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("ticker file header missing symbol/company columns: %v", header)
	}

	d := &Directory{bySymbol: make(map[string]string)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ticker row: %w", err)
		}
		if len(row) <= symCol || len(row) <= nameCol {
			continue
		}
		symbol := strings.TrimSpace(row[symCol])
		company := strings.TrimSpace(row[nameCol])
		if symbol == "" {
			continue
		}
		key := strings.ToUpper(symbol)
		if _, dup := d.bySymbol[key]; dup {
			continue
		}
		d.bySymbol[key] = company
		d.records = append(d.records, model.TickerRecord{Symbol: symbol, Company: company})
	}

	sort.Slice(d.records, func(i, j int) bool { return d.records[i].Symbol < d.records[j].Symbol })
	return d, nil
}

// Lookup returns the company name for a symbol. A miss is a normal result,
// not an error.
func (d *Directory) Lookup(symbol string) (string, bool) {
	company, ok := d.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	return company, ok
}

// ListAll returns all records ordered by symbol.
func (d *Directory) ListAll() []model.TickerRecord {
	out := make([]model.TickerRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Search returns records whose symbol or company contains the query,
// case-insensitively, ordered by symbol.
func (d *Directory) Search(query string) []model.TickerRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.ListAll()
	}
	var out []model.TickerRecord
	for _, rec := range d.records {
		if strings.Contains(strings.ToLower(rec.Symbol), q) ||
			strings.Contains(strings.ToLower(rec.Company), q) {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of loaded records.
func (d *Directory) Len() int { return len(d.records) }
