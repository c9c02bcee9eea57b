package server

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/KitchenMishap/huffcodes/huffman"
	"github.com/KitchenMishap/huffcodes/jobs"
	"github.com/KitchenMishap/huffcodes/logger"
	"github.com/google/uuid"
)

var ErrInvalidText = errors.New("text is not valid UTF-8")

type TableService struct {
	repo   TableRepo
	logger logger.Logger
	now    func() time.Time
}

func NewTableService(r TableRepo, l logger.Logger) *TableService {
	return &TableService{repo: r, logger: l, now: time.Now}
}

// Compute builds a table for text without storing it.
func (s *TableService) Compute(text string) (*Table, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	res, err := jobs.Analyze([]rune(text), true)
	if err != nil {
		return nil, err
	}
	return &Table{
		Codes:     huffman.StringKeys(res.Codes),
		Stats:     res.Stats,
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *TableService) Create(ctx context.Context, text string) (*Table, error) {
	t, err := s.Compute(text)
	if err != nil {
		return nil, err
	}
	t.ID = uuid.NewString()
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Infof("table created: %s (%d symbols)", t.ID, len(t.Codes))
	return t, nil
}

func (s *TableService) GetByID(ctx context.Context, id string) (*Table, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *TableService) List(ctx context.Context) ([]*Table, error) {
	return s.repo.List(ctx)
}
