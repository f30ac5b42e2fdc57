package billing

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
)

// csvHeader matches the columns of the original billing export.
var csvHeader = []string{"ID Tagihan", "Nama Pasien", "Tanggal", "Jumlah", "Status", "Jumlah Item"}

// ExportCSV writes the full ledger as CSV. Fields containing delimiters
// or quotes are quoted per RFC 4180.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, inv := range s.store.Snapshot(ctx) {
		record := []string{
			inv.ID,
			inv.PatientName,
			inv.Date,
			strconv.FormatInt(inv.Amount, 10),
			string(inv.Status),
			strconv.Itoa(inv.Items),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
