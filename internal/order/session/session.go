// Package session is the editing state for one work order: the order value,
// the page cursor, and the per-action guards. The session is owned by a
// single event loop; the action tags protect against a control being
// triggered twice, not against concurrent callers.
package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tecelar/internal/domain"
	"tecelar/internal/dto"
	apperrors "tecelar/internal/errors"
	"tecelar/internal/order/store"
)

// Backend is the slice of the REST client the session needs.
type Backend interface {
	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, order domain.Order) (*domain.Order, error)
	GeneratePDFPreview(ctx context.Context, order domain.Order) ([]byte, error)
	UploadImage(ctx context.Context, filename string, content []byte) (*dto.UploadResponse, error)
}

// ActionState distinguishes a failed action from an idle one so the UI can
// offer retry feedback. Only InFlight blocks re-triggering.
type ActionState string

const (
	ActionIdle     ActionState = "IDLE"
	ActionInFlight ActionState = "IN_FLIGHT"
	ActionFailed   ActionState = "FAILED"
)

type rowKey struct {
	page int
	line int
}

type Session struct {
	order       domain.Order
	currentPage int
	totalPages  int

	saveState ActionState
	pdfState  ActionState
	uploads   map[rowKey]ActionState

	backend Backend
	logger  *zap.Logger
}

// New starts a session on a fresh order: today's date and time, one page of
// default rows, cursor on page 1.
func New(backend Backend, logger *zap.Logger) *Session {
	return &Session{
		order:       domain.NewOrder(time.Now()),
		currentPage: 1,
		totalPages:  1,
		saveState:   ActionIdle,
		pdfState:    ActionIdle,
		uploads:     make(map[rowKey]ActionState),
		backend:     backend,
		logger:      logger,
	}
}

// Load replaces the session's order with a persisted one, resetting the
// cursor to page 1.
func (s *Session) Load(order domain.Order) {
	s.order = order
	s.totalPages = order.TotalPages()
	s.currentPage = 1
	s.uploads = make(map[rowKey]ActionState)
}

func (s *Session) Order() domain.Order { return s.order }
func (s *Session) CurrentPage() int    { return s.currentPage }
func (s *Session) TotalPages() int     { return s.totalPages }

func (s *Session) SaveState() ActionState { return s.saveState }
func (s *Session) PDFState() ActionState  { return s.pdfState }

func (s *Session) UploadState(page, line int) ActionState {
	if state, ok := s.uploads[rowKey{page, line}]; ok {
		return state
	}
	return ActionIdle
}

// VisibleRows is the current page as the UI renders it: always exactly six
// rows, untouched lines synthesized as defaults.
func (s *Session) VisibleRows() []domain.Item {
	return store.FillPage(s.order.Items, s.currentPage)
}

func (s *Session) SetClient(v string)      { s.order.Client = v }
func (s *Session) SetDate(v string)        { s.order.Date = v }
func (s *Session) SetTime(v string)        { s.order.Time = v }
func (s *Session) SetPaper(v string)       { s.order.Paper = optional(v) }
func (s *Session) SetFabric(v string)      { s.order.Fabric = optional(v) }
func (s *Session) SetFabricWidth(v string) { s.order.FabricWidth = optional(v) }
func (s *Session) SetPrintWidth(v string)  { s.order.PrintWidth = optional(v) }

func (s *Session) SetFlag(flag domain.Flag, value bool) {
	s.order = domain.SetFlag(s.order, flag, value)
}

// EditLine replaces one row of the current order. Out-of-range coordinates
// are rejected rather than silently creating stray rows.
func (s *Session) EditLine(page, line int, item domain.Item) error {
	if page < 1 || page > s.totalPages {
		return apperrors.NewInvalidOperationError(fmt.Sprintf("page %d does not exist", page))
	}
	if line < 0 || line >= domain.LinesPerPage {
		return apperrors.NewInvalidOperationError(fmt.Sprintf("line %d is out of range", line))
	}

	s.order.Items = store.ReplaceLine(s.order.Items, page, line, item)
	return nil
}

// AddPage appends a page of default rows and navigates to it.
func (s *Session) AddPage() error {
	newPage := s.totalPages + 1
	items, err := store.AddPage(s.order.Items, newPage)
	if err != nil {
		return err
	}

	s.order.Items = items
	s.totalPages = newPage
	s.currentPage = newPage
	return nil
}

// RemovePage drops a page and renumbers the rest. The cursor is clamped
// against the updated total so it never points past the last page.
func (s *Session) RemovePage(page int) error {
	if page < 1 || page > s.totalPages {
		return apperrors.NewInvalidOperationError(fmt.Sprintf("page %d does not exist", page))
	}

	items, err := store.RemovePage(s.order.Items, page, s.totalPages)
	if err != nil {
		return err
	}

	s.order.Items = items
	s.totalPages--
	if s.currentPage > s.totalPages {
		s.currentPage = s.totalPages
	}
	return nil
}

func (s *Session) SelectPage(page int) error {
	if page < 1 || page > s.totalPages {
		return apperrors.NewInvalidOperationError(fmt.Sprintf("page %d does not exist", page))
	}
	s.currentPage = page
	return nil
}

// Save validates, then creates or updates depending on whether the order has
// been persisted before, and merges the returned order (with its
// server-assigned ids) back into the session.
func (s *Session) Save(ctx context.Context) (*domain.Order, error) {
	if s.saveState == ActionInFlight {
		return nil, apperrors.NewInvalidOperationError("a save is already in progress")
	}

	if err := domain.ValidateForSubmit(s.order); err != nil {
		return nil, err
	}

	s.saveState = ActionInFlight

	var saved *domain.Order
	var err error
	if s.order.ID == nil {
		saved, err = s.backend.CreateOrder(ctx, s.order)
	} else {
		saved, err = s.backend.UpdateOrder(ctx, *s.order.ID, s.order)
	}
	if err != nil {
		s.saveState = ActionFailed
		s.logger.Warn("order save failed", zap.Error(err))
		return nil, err
	}

	s.order = *saved
	s.totalPages = saved.TotalPages()
	if s.currentPage > s.totalPages {
		s.currentPage = s.totalPages
	}
	s.saveState = ActionIdle

	s.logger.Info("order saved", zap.Int64p("orderId", saved.ID),
		zap.Int("items", len(saved.Items)))
	return saved, nil
}

// GeneratePDF renders a preview of the order as it currently stands,
// without persisting it. Independent of Save: the two may overlap.
func (s *Session) GeneratePDF(ctx context.Context) ([]byte, error) {
	if s.pdfState == ActionInFlight {
		return nil, apperrors.NewInvalidOperationError("a pdf preview is already in progress")
	}

	if err := domain.ValidateForSubmit(s.order); err != nil {
		return nil, err
	}

	s.pdfState = ActionInFlight

	pdf, err := s.backend.GeneratePDFPreview(ctx, s.order)
	if err != nil {
		s.pdfState = ActionFailed
		s.logger.Warn("pdf preview failed", zap.Error(err))
		return nil, err
	}

	s.pdfState = ActionIdle
	return pdf, nil
}

// AttachImage uploads one file and binds the result to a row: ref and
// folder take the original file name, the image path comes from the
// backend. A failed upload leaves the row exactly as it was.
func (s *Session) AttachImage(ctx context.Context, page, line int, filename string, content []byte) error {
	if page < 1 || page > s.totalPages {
		return apperrors.NewInvalidOperationError(fmt.Sprintf("page %d does not exist", page))
	}
	if line < 0 || line >= domain.LinesPerPage {
		return apperrors.NewInvalidOperationError(fmt.Sprintf("line %d is out of range", line))
	}

	key := rowKey{page, line}
	if s.uploads[key] == ActionInFlight {
		return apperrors.NewInvalidOperationError(
			fmt.Sprintf("an upload for page %d line %d is already in progress", page, line))
	}

	s.uploads[key] = ActionInFlight

	resp, err := s.backend.UploadImage(ctx, filename, content)
	if err != nil {
		s.uploads[key] = ActionFailed
		return err
	}

	s.applyUpload(page, line, filename, resp.CaminhoImagem)
	s.uploads[key] = ActionIdle
	return nil
}

// Attachment is one pending image drop for AttachImages.
type Attachment struct {
	Page     int
	Line     int
	Filename string
	Content  []byte
}

// AttachImages uploads several rows' images concurrently. Each row succeeds
// or fails on its own; successes are applied to the order even when other
// rows fail, and the first failure is returned.
func (s *Session) AttachImages(ctx context.Context, attachments []Attachment) error {
	// Validate the whole batch before launching anything: a rejected batch
	// must not leave uploads running against the backend.
	for _, att := range attachments {
		if att.Page < 1 || att.Page > s.totalPages || att.Line < 0 || att.Line >= domain.LinesPerPage {
			return apperrors.NewInvalidOperationError(
				fmt.Sprintf("page %d line %d is out of range", att.Page, att.Line))
		}
		if s.uploads[rowKey{att.Page, att.Line}] == ActionInFlight {
			return apperrors.NewInvalidOperationError(
				fmt.Sprintf("an upload for page %d line %d is already in progress", att.Page, att.Line))
		}
	}

	for _, att := range attachments {
		s.uploads[rowKey{att.Page, att.Line}] = ActionInFlight
	}

	results := make([]*dto.UploadResponse, len(attachments))

	var g errgroup.Group
	for i, att := range attachments {
		i, att := i, att
		g.Go(func() error {
			resp, err := s.backend.UploadImage(ctx, att.Filename, att.Content)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}

	err := g.Wait()

	// Mutations happen here, on the caller's goroutine, after all uploads
	// settled. Rows whose upload failed keep their prior state.
	for i, att := range attachments {
		key := rowKey{att.Page, att.Line}
		if results[i] != nil {
			s.applyUpload(att.Page, att.Line, att.Filename, results[i].CaminhoImagem)
			s.uploads[key] = ActionIdle
		} else {
			s.uploads[key] = ActionFailed
		}
	}

	return err
}

func (s *Session) applyUpload(page, line int, filename, imagePath string) {
	row := store.FillPage(s.order.Items, page)[line]
	row.Ref = optional(filename)
	row.Folder = optional(filename)
	row.ImagePath = optional(imagePath)
	s.order.Items = store.ReplaceLine(s.order.Items, page, line, row)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
