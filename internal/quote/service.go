package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mnzmnz10/yeter-sub001/internal/selection"
)

var (
	ErrEmptySelection = errors.New("quote: selection is empty")
	ErrInvalidDraft   = errors.New("quote: invalid draft")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Service persists quotes. The payload it writes is built from the entries
// handed in at call time; later rate refreshes or selection edits do not
// reach a save already in flight.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Save executes a resolved save decision: it aggregates the entries into
// totals, builds the denormalized lines, and creates or updates the record
// in one transaction. The persisted quote is returned re-read from storage.
func (s *Service) Save(ctx context.Context, decision Decision, draft Draft, entries []selection.Entry) (*Quote, error) {
	if len(entries) == 0 {
		return nil, ErrEmptySelection
	}
	if decision.Name == "" {
		return nil, fmt.Errorf("%w: name must be resolved before saving", ErrInvalidDraft)
	}
	mode := draft.PriceMode
	if !mode.Valid() {
		mode = PriceModeList
	}

	totals := Aggregate(entries, draft.DiscountPercent, draft.LaborCost, mode)

	payload := Quote{
		ID:              decision.QuoteID,
		Name:            decision.Name,
		DiscountPercent: sanitize(draft.DiscountPercent),
		LaborCost:       sanitize(draft.LaborCost),
		PriceMode:       mode,
		Notes:           draft.Notes,
		Totals:          totals,
	}
	for i, e := range entries {
		unit := LinePrice(e.Item, mode)
		lineTotal := 0.0
		if unit != nil {
			lineTotal = sanitize(*unit * float64(e.Quantity))
		}
		payload.Lines = append(payload.Lines, Line{
			ItemID:          e.Item.ID,
			Quantity:        e.Quantity,
			Name:            e.Item.Name,
			CompanyID:       e.Item.CompanyID,
			CategoryID:      e.Item.CategoryID,
			ListPrice:       e.Item.ListPrice,
			DiscountedPrice: e.Item.DiscountedPrice,
			Currency:        e.Item.Currency,
			UnitPriceBase:   unit,
			LineTotalBase:   lineTotal,
			LineOrder:       i + 1,
		})
	}

	var savedID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		switch decision.Action {
		case SaveUpdate:
			if err := tx.Update(ctx, payload); err != nil {
				return err
			}
			if err := tx.DeleteLines(ctx, payload.ID); err != nil {
				return err
			}
			savedID = payload.ID
		default:
			id, err := tx.Create(ctx, payload)
			if err != nil {
				return err
			}
			savedID = id
		}
		for i := range payload.Lines {
			payload.Lines[i].QuoteID = savedID
			if _, err := tx.InsertLine(ctx, payload.Lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("quote: save: %w", err)
	}

	saved, err := s.repo.Get(ctx, savedID)
	if err != nil {
		return nil, fmt.Errorf("quote: reload saved quote %d: %w", savedID, err)
	}

	s.logger.Info("quote saved",
		slog.Int64("id", saved.ID),
		slog.String("name", saved.Name),
		slog.Bool("updated", decision.Action == SaveUpdate),
		slog.Int("lines", len(saved.Lines)))
	return saved, nil
}

// Get returns a persisted quote with its lines.
func (s *Service) Get(ctx context.Context, id int64) (*Quote, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// List returns quote summaries, newest first.
func (s *Service) List(ctx context.Context, req ListRequest) ([]Summary, int, error) {
	if req.Limit < 1 {
		req.Limit = DefaultListLimit
	}
	if req.Limit > MaxListLimit {
		req.Limit = MaxListLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return s.repo.List(ctx, req)
}

// Delete removes a persisted quote and its lines.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("quote deleted", slog.Int64("id", id))
	return nil
}
