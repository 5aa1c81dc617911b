// Package ingest is the ingestion boundary: it turns an uploaded payload
// into a normalized dataset and re-serializes datasets for download. It is
// the only part of the system that can fail; everything downstream is total.
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"salesboard/domain/core"
)

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// DecodePayload turns uploaded binary content into delimited text. Zip
// archives yield the text of their first *.csv member (case-insensitive) and
// fail with ErrNoCSVInArchive when none exists; xlsx workbooks are flattened
// to CSV through their first sheet; anything else must already be decodable
// text.
func DecodePayload(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", core.ErrUndecodablePayload
	}

	if bytes.HasPrefix(payload, zipMagic) {
		zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
		if err != nil {
			return "", fmt.Errorf("%w: %v", core.ErrUndecodablePayload, err)
		}
		if isWorkbook(zr) {
			return decodeWorkbook(payload)
		}
		return extractArchiveCSV(zr)
	}

	return decodeText(payload)
}

// isWorkbook detects the xlsx container layout inside a zip reader.
func isWorkbook(zr *zip.Reader) bool {
	for _, f := range zr.File {
		if f.Name == "xl/workbook.xml" {
			return true
		}
	}
	return false
}

// extractArchiveCSV returns the decoded text of the first csv member.
func extractArchiveCSV(zr *zip.Reader) (string, error) {
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", core.ErrUndecodablePayload, err)
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("%w: %v", core.ErrUndecodablePayload, err)
		}
		log.Printf("[Ingest] Extracted %s from archive (%d bytes)", f.Name, len(raw))
		return decodeText(raw)
	}
	return "", core.ErrNoCSVInArchive
}

// decodeWorkbook flattens the first sheet of an xlsx workbook to CSV text so
// it flows through the same parsing pipeline as plain uploads.
func decodeWorkbook(payload []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrUndecodablePayload, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrUndecodablePayload, err)
	}
	log.Printf("[Ingest] Flattened workbook sheet %q (%d rows)", sheet, len(rows))

	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("%w: %v", core.ErrUndecodablePayload, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrUndecodablePayload, err)
	}
	return b.String(), nil
}

// decodeText validates the payload as UTF-8 text, stripping a BOM if present.
func decodeText(payload []byte) (string, error) {
	payload = bytes.TrimPrefix(payload, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(payload) {
		return "", core.ErrUndecodablePayload
	}
	return string(payload), nil
}
