// Package sequence mints the human-readable identifiers used across the
// registry: slip document numbers and property numbers. All numbering
// runs through the store's atomic NextSequence; there is deliberately no
// "find the latest document and add one" path anywhere, since that
// strategy hands the same number to two concurrent issuers.
//
// Formats are fixed for compatibility with the forms the office prints:
//
//	documents:  {KIND}-{year}-{seq:04d}        e.g. PTR-2024-0007
//	property:   {year}-{smg}-{gl}-{office}-{seq:04d}
package sequence

import (
	"context"
	"fmt"
	"time"

	"gso/store"
)

// DocumentKey is the counter key for a document kind in a calendar year.
// Each kind restarts its sequence every year.
func DocumentKey(kind string, year int) string {
	return fmt.Sprintf("%s-%d", kind, year)
}

// PropertyKey is the counter key for a property-number prefix: year plus
// category codes plus office code. Assets that share a prefix share a
// counter.
func PropertyKey(year int, subMajorGroup, glAccount, officeCode string) string {
	return fmt.Sprintf("PN-%d-%s-%s-%s", year, subMajorGroup, glAccount, officeCode)
}

// NextDocumentNumber reserves the next number for the given document kind
// in the year of now and renders it, e.g. "IIRUP-2024-0012".
func NextDocumentNumber(ctx context.Context, tx store.Tx, kind string, now time.Time) (string, error) {
	year := now.Year()
	n, err := tx.NextSequence(ctx, DocumentKey(kind, year), 1)
	if err != nil {
		return "", fmt.Errorf("allocating %s number: %w", kind, err)
	}
	return FormatDocumentNumber(kind, year, n), nil
}

// NextPropertyNumbers reserves a contiguous block of count property
// numbers under one prefix and renders them in order. Bulk creation
// reserves its whole batch in one allocation so concurrent batches
// cannot interleave.
func NextPropertyNumbers(ctx context.Context, tx store.Tx, now time.Time, subMajorGroup, glAccount, officeCode string, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("property number count must be positive, got %d", count)
	}
	year := now.Year()
	last, err := tx.NextSequence(ctx, PropertyKey(year, subMajorGroup, glAccount, officeCode), int64(count))
	if err != nil {
		return nil, fmt.Errorf("allocating property numbers: %w", err)
	}
	out := make([]string, 0, count)
	for n := last - int64(count) + 1; n <= last; n++ {
		out = append(out, FormatPropertyNumber(year, subMajorGroup, glAccount, officeCode, n))
	}
	return out, nil
}

// FormatDocumentNumber renders a document number, e.g. "PTR-2024-0007".
func FormatDocumentNumber(kind string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", kind, year, seq)
}

// FormatPropertyNumber renders a property number,
// e.g. "2024-05-06-07-0001".
func FormatPropertyNumber(year int, subMajorGroup, glAccount, officeCode string, seq int64) string {
	return fmt.Sprintf("%d-%s-%s-%s-%04d", year, subMajorGroup, glAccount, officeCode, seq)
}
