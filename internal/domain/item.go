package domain

// CropType tags which side of an uploaded image is cropped during PDF
// rendering downstream. No pixel processing happens on this side.
type CropType string

const (
	CropLeft  CropType = "LEFT"
	CropRight CropType = "RIGHT"
	CropFull  CropType = "FULL"
)

// LinesPerPage is the fixed number of image rows on every order page.
const LinesPerPage = 6

type Item struct {
	ID         *int64
	PageNumber int
	LineNumber int
	Ref        *string
	Folder     *string
	Length     *string
	CropType   CropType
	ImagePath  *string
}

// DefaultItem is an untouched row: crop left, every other field unset.
// Rows stay in this synthesized form until the user edits them.
func DefaultItem(pageNumber, lineNumber int) Item {
	return Item{
		PageNumber: pageNumber,
		LineNumber: lineNumber,
		CropType:   CropLeft,
	}
}

// IsDefault reports whether the item carries no user-entered data.
func (i Item) IsDefault() bool {
	return i.ID == nil &&
		i.Ref == nil &&
		i.Folder == nil &&
		i.Length == nil &&
		i.ImagePath == nil &&
		i.CropType == CropLeft
}
