package service

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type kardexService struct {
	kardexRepo repository.KardexRepository
}

func NewKardexService(kardexRepo repository.KardexRepository) KardexService {
	return &kardexService{kardexRepo: kardexRepo}
}

func (s *kardexService) Record(ctx context.Context, entry *domain.KardexEntry) error {
	if entry.Quantity == 0 {
		entry.Quantity = 1
	}
	return s.kardexRepo.Create(ctx, entry)
}

func (s *kardexService) ListAll(ctx context.Context) ([]domain.KardexEntry, error) {
	return s.kardexRepo.List(ctx)
}

func (s *kardexService) ListByTool(ctx context.Context, toolUnitID int64) ([]domain.KardexEntry, error) {
	return s.kardexRepo.ListByTool(ctx, toolUnitID)
}

func (s *kardexService) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error) {
	return s.kardexRepo.ListByDateRange(ctx, start, end)
}

func (s *kardexService) ListFiltered(ctx context.Context, toolUnitID int64, start, end time.Time) ([]domain.KardexEntry, error) {
	return s.kardexRepo.ListByToolAndDateRange(ctx, toolUnitID, start, end)
}
