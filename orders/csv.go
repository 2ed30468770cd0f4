package orders

import (
	"encoding/csv"
	"fmt"
	"os"

	"robot-order-bot/models"
)

// Column names as they appear in the orders CSV header row.
const (
	colNumber  = "Order number"
	colHead    = "Head"
	colBody    = "Body"
	colLegs    = "Legs"
	colAddress = "Address"
)

// ReadFile parses the orders CSV at path into an ordered slice of Orders.
// The first row is the header; each required column must be present.
func ReadFile(path string) ([]*models.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("orders: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("orders: parse %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("orders: %q is empty", path)
	}

	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("orders: %q: %w", path, err)
	}

	result := make([]*models.Order, 0, len(rows)-1)
	for _, row := range rows[1:] {
		result = append(result, &models.Order{
			Number:  row[idx[colNumber]],
			Head:    row[idx[colHead]],
			Body:    row[idx[colBody]],
			Legs:    row[idx[colLegs]],
			Address: row[idx[colAddress]],
		})
	}
	return result, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range []string{colNumber, colHead, colBody, colLegs, colAddress} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	return idx, nil
}
