// Package store holds the pure operations over an order's flat item
// collection. Page membership is a field on each item, not nesting, so
// every operation here is a derivation over []domain.Item with no hidden
// state.
package store

import (
	"fmt"

	"tecelar/internal/domain"
	apperrors "tecelar/internal/errors"
)

// ItemsForPage filters the collection down to one page. Row order is not
// significant; FillPage re-derives the fixed layout.
func ItemsForPage(items []domain.Item, pageNumber int) []domain.Item {
	var page []domain.Item
	for _, item := range items {
		if item.PageNumber == pageNumber {
			page = append(page, item)
		}
	}
	return page
}

// FillPage returns exactly domain.LinesPerPage rows for the page, in line
// order. Lines the user has not touched are synthesized as defaults; they
// are never written back into the collection by this function.
func FillPage(items []domain.Item, pageNumber int) []domain.Item {
	byLine := make(map[int]domain.Item, domain.LinesPerPage)
	for _, item := range items {
		if item.PageNumber == pageNumber {
			byLine[item.LineNumber] = item
		}
	}

	page := make([]domain.Item, 0, domain.LinesPerPage)
	for line := 0; line < domain.LinesPerPage; line++ {
		if item, ok := byLine[line]; ok {
			page = append(page, item)
		} else {
			page = append(page, domain.DefaultItem(pageNumber, line))
		}
	}
	return page
}

// ReplaceLine swaps in newItem at the given page and line, appending when
// no row exists there yet. The match is structural on (page, line), never
// on the stored id, so unsaved and saved rows merge the same way.
func ReplaceLine(items []domain.Item, pageNumber, lineNumber int, newItem domain.Item) []domain.Item {
	newItem.PageNumber = pageNumber
	newItem.LineNumber = lineNumber

	out := make([]domain.Item, 0, len(items)+1)
	replaced := false
	for _, item := range items {
		if item.PageNumber == pageNumber && item.LineNumber == lineNumber {
			out = append(out, newItem)
			replaced = true
			continue
		}
		out = append(out, item)
	}
	if !replaced {
		out = append(out, newItem)
	}
	return out
}

// AddPage appends a full page of default rows. The caller guarantees page
// numbers grow monotonically; a page that already has items is a
// precondition violation.
func AddPage(items []domain.Item, newPageNumber int) ([]domain.Item, error) {
	if len(ItemsForPage(items, newPageNumber)) > 0 {
		return nil, apperrors.NewInvalidOperationError(
			fmt.Sprintf("page %d already exists", newPageNumber))
	}

	out := make([]domain.Item, 0, len(items)+domain.LinesPerPage)
	out = append(out, items...)
	for line := 0; line < domain.LinesPerPage; line++ {
		out = append(out, domain.DefaultItem(newPageNumber, line))
	}
	return out, nil
}

// RemovePage drops every row on the page and closes the gap: rows on later
// pages move down one page number, keeping page numbers a dense 1..n-1
// sequence. Removing the only page is rejected.
func RemovePage(items []domain.Item, pageNumber, totalPages int) ([]domain.Item, error) {
	if totalPages == 1 {
		return nil, apperrors.NewInvalidOperationError("cannot remove the only page")
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.PageNumber == pageNumber {
			continue
		}
		if item.PageNumber > pageNumber {
			item.PageNumber--
		}
		out = append(out, item)
	}
	return out, nil
}
