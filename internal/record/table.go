package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Delimiter separates fields in the exported table.
const Delimiter = ';'

// Header is the first row of the exported table.
var Header = []string{"Set", "Trial", "Type", "Direction", "Responded", "EllipseColor"}

// Row renders o in Header order.
func (o Outcome) Row() []string {
	return []string{
		strconv.Itoa(o.Block),
		strconv.Itoa(o.Trial),
		string(o.Type),
		string(o.Direction),
		strconv.FormatBool(o.Responded),
		string(o.Signal),
	}
}

// WriteTable writes the header and one row per outcome to w.
func WriteTable(w io.Writer, outcomes []Outcome) error {
	writer := csv.NewWriter(w)
	writer.Comma = Delimiter

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for i, o := range outcomes {
		if err := writer.Write(o.Row()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}
