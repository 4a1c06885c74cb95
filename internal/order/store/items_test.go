package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tecelar/internal/domain"
	apperrors "tecelar/internal/errors"
)

func editedItem(page, line int, ref string) domain.Item {
	item := domain.DefaultItem(page, line)
	item.Ref = &ref
	return item
}

func TestItemsForPage(t *testing.T) {
	items := []domain.Item{
		editedItem(1, 0, "a"),
		editedItem(2, 0, "b"),
		editedItem(2, 3, "c"),
	}

	page2 := ItemsForPage(items, 2)
	assert.Len(t, page2, 2)
	for _, item := range page2 {
		assert.Equal(t, 2, item.PageNumber)
	}

	assert.Empty(t, ItemsForPage(items, 4))
}

func TestFillPage_AlwaysSixLines(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.Item
	}{
		{"empty collection", nil},
		{"partially filled page", []domain.Item{editedItem(1, 2, "x"), editedItem(1, 5, "y")}},
		{"other pages only", []domain.Item{editedItem(3, 0, "z")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := FillPage(tt.items, 1)

			require.Len(t, page, domain.LinesPerPage)
			for line, item := range page {
				assert.Equal(t, 1, item.PageNumber)
				assert.Equal(t, line, item.LineNumber)
			}
		})
	}
}

func TestFillPage_KeepsExistingRowsAndSynthesizesRest(t *testing.T) {
	items := []domain.Item{editedItem(1, 2, "kept")}

	page := FillPage(items, 1)

	assert.Equal(t, "kept", *page[2].Ref)
	for line, item := range page {
		if line == 2 {
			continue
		}
		assert.True(t, item.IsDefault(), "line %d must be a default row", line)
		assert.Equal(t, domain.CropLeft, item.CropType)
	}

	// Synthesis is read-only: the input collection is untouched.
	assert.Len(t, items, 1)
}

func TestReplaceLine_ReplacesByStructuralMatch(t *testing.T) {
	id := int64(41)
	existing := editedItem(1, 3, "old")
	existing.ID = &id

	replacement := editedItem(1, 3, "new")

	out := ReplaceLine([]domain.Item{existing}, 1, 3, replacement)

	require.Len(t, out, 1)
	assert.Equal(t, "new", *out[0].Ref)
	assert.Nil(t, out[0].ID, "stored id must not drive the match")
}

func TestReplaceLine_InsertsWhenAbsent(t *testing.T) {
	out := ReplaceLine(nil, 2, 4, editedItem(0, 0, "inserted"))

	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].PageNumber)
	assert.Equal(t, 4, out[0].LineNumber)
	assert.Equal(t, "inserted", *out[0].Ref)
}

func TestAddPage(t *testing.T) {
	out, err := AddPage(nil, 1)
	require.NoError(t, err)
	assert.Len(t, out, domain.LinesPerPage)

	out, err = AddPage(out, 2)
	require.NoError(t, err)
	assert.Len(t, out, 2*domain.LinesPerPage)
	assert.Len(t, ItemsForPage(out, 2), domain.LinesPerPage)
}

func TestAddPage_ExistingPageIsRejected(t *testing.T) {
	items, err := AddPage(nil, 1)
	require.NoError(t, err)

	_, err = AddPage(items, 1)
	_, ok := apperrors.IsInvalidOperationError(err)
	assert.True(t, ok)
}

func TestRemovePage_Renumbers(t *testing.T) {
	items := []domain.Item{
		editedItem(1, 0, "p1"),
		editedItem(2, 0, "p2"),
		editedItem(3, 0, "p3"),
	}

	out, err := RemovePage(items, 2, 3)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, 1, out[0].PageNumber)
	assert.Equal(t, "p1", *out[0].Ref)

	assert.Equal(t, 2, out[1].PageNumber, "former page 3 moves down to page 2")
	assert.Equal(t, "p3", *out[1].Ref)
}

func TestRemovePage_LastPageIsRejected(t *testing.T) {
	items := []domain.Item{editedItem(1, 0, "only")}

	_, err := RemovePage(items, 1, 1)

	_, ok := apperrors.IsInvalidOperationError(err)
	assert.True(t, ok)
}
