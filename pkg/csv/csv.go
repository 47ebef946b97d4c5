package csv

import (
	"bytes"
	stdcsv "encoding/csv"
)

// Record is one exportable row; Fields must line up with the header passed
// to Create.
type Record interface {
	Fields() []string
}

type FilterFunc[T Record] func(T) bool

func Create[T Record](header []string, records []T, filter FilterFunc[T]) ([]byte, error) {
	var buf bytes.Buffer
	w := stdcsv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range records {
		if filter == nil || filter(r) {
			if err := w.Write(r.Fields()); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
