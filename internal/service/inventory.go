package service

import (
	"context"
	"strings"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"
)

type inventoryService struct {
	unitRepo repository.ToolUnitRepository
	kardex   KardexService
}

func NewInventoryService(unitRepo repository.ToolUnitRepository, kardex KardexService) InventoryService {
	return &inventoryService{
		unitRepo: unitRepo,
		kardex:   kardex,
	}
}

func (s *inventoryService) RegisterUnits(ctx context.Context, template *domain.ToolUnit, quantity int, actorRut string) (*domain.ToolUnit, error) {
	if strings.TrimSpace(template.Name) == "" {
		return nil, domain.ValidationError("tool name is required")
	}
	if strings.TrimSpace(template.Category) == "" {
		return nil, domain.ValidationError("tool category is required")
	}
	if template.ReplacementValueCents <= 0 {
		return nil, domain.ValidationError("replacement value must be greater than 0")
	}
	if quantity < 1 {
		return nil, domain.ValidationError("quantity must be at least 1")
	}

	var first *domain.ToolUnit
	for i := 0; i < quantity; i++ {
		unit := &domain.ToolUnit{
			Name:                  template.Name,
			Category:              template.Category,
			ReplacementValueCents: template.ReplacementValueCents,
			RepairValueCents:      template.RepairValueCents,
			DailyRateCents:        template.DailyRateCents,
			DailyLateRateCents:    template.DailyLateRateCents,
			Status:                domain.UnitStatusAvailable,
		}
		if err := s.unitRepo.Create(ctx, unit); err != nil {
			return nil, err
		}

		entry := &domain.KardexEntry{
			Type:       domain.MovementTypeIntake,
			Quantity:   1,
			ToolUnitID: unit.ID,
			ActorRut:   actorRut,
		}
		if err := s.kardex.Record(ctx, entry); err != nil {
			return nil, err
		}

		if first == nil {
			first = unit
		}
	}

	logger.Info("Registered tool units", "name", template.Name, "category", template.Category, "quantity", quantity)
	return first, nil
}

func (s *inventoryService) AcquireUnit(ctx context.Context, unitID int64) (*domain.ToolUnit, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	ok, err := s.unitRepo.UpdateStatus(ctx, unitID, domain.UnitStatusAvailable, domain.UnitStatusLoaned)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ConflictError("tool unit %d is not available", unitID)
	}

	unit.Status = domain.UnitStatusLoaned
	return unit, nil
}

func (s *inventoryService) ReleaseUnit(ctx context.Context, unitID int64) error {
	if _, err := s.unitRepo.GetByID(ctx, unitID); err != nil {
		return err
	}

	ok, err := s.unitRepo.UpdateStatus(ctx, unitID, domain.UnitStatusLoaned, domain.UnitStatusAvailable)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ConflictError("tool unit %d is not on loan", unitID)
	}
	return nil
}

func (s *inventoryService) MarkInRepair(ctx context.Context, unitID int64, loanID *int64, actorRut string) error {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}

	unit.Status = domain.UnitStatusInRepair
	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return err
	}

	entry := &domain.KardexEntry{
		Type:       domain.MovementTypeRepair,
		Quantity:   1,
		ToolUnitID: unitID,
		LoanID:     loanID,
		ActorRut:   actorRut,
	}
	return s.kardex.Record(ctx, entry)
}

func (s *inventoryService) Decommission(ctx context.Context, unitID int64, actorRut string) error {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}

	unit.Status = domain.UnitStatusDecommissioned
	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return err
	}

	entry := &domain.KardexEntry{
		Type:       domain.MovementTypeDecommission,
		Quantity:   1,
		ToolUnitID: unitID,
		ActorRut:   actorRut,
	}
	return s.kardex.Record(ctx, entry)
}

func (s *inventoryService) UpdateUnit(ctx context.Context, unitID int64, details *domain.ToolUnit, actorRut string) (*domain.ToolUnit, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	oldStatus := unit.Status
	pricingChanged := unit.Pricing() != details.Pricing()

	unit.Name = details.Name
	unit.Category = details.Category
	unit.ReplacementValueCents = details.ReplacementValueCents
	unit.RepairValueCents = details.RepairValueCents
	unit.DailyRateCents = details.DailyRateCents
	unit.DailyLateRateCents = details.DailyLateRateCents
	unit.Status = details.Status
	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}

	// Fleet-wide repricing: every unit of the same model+category follows,
	// but only when a monetary field actually changed.
	if pricingChanged {
		if err := s.unitRepo.UpdatePricingByNameAndCategory(ctx, unit.Name, unit.Category, details.Pricing()); err != nil {
			return nil, err
		}
		logger.Info("Repriced tool units", "name", unit.Name, "category", unit.Category)
	}

	if oldStatus != unit.Status && unit.Status == domain.UnitStatusInRepair {
		entry := &domain.KardexEntry{
			Type:       domain.MovementTypeRepair,
			Quantity:   1,
			ToolUnitID: unit.ID,
			ActorRut:   actorRut,
		}
		if err := s.kardex.Record(ctx, entry); err != nil {
			return nil, err
		}
	}
	if oldStatus != unit.Status && unit.Status == domain.UnitStatusDecommissioned {
		entry := &domain.KardexEntry{
			Type:       domain.MovementTypeDecommission,
			Quantity:   1,
			ToolUnitID: unit.ID,
			ActorRut:   actorRut,
		}
		if err := s.kardex.Record(ctx, entry); err != nil {
			return nil, err
		}
	}

	return unit, nil
}

func (s *inventoryService) GetUnit(ctx context.Context, unitID int64) (*domain.ToolUnit, error) {
	return s.unitRepo.GetByID(ctx, unitID)
}

func (s *inventoryService) ListUnits(ctx context.Context) ([]domain.ToolUnit, error) {
	return s.unitRepo.List(ctx)
}

func (s *inventoryService) ListAvailable(ctx context.Context) ([]domain.ToolUnit, error) {
	return s.unitRepo.ListByStatus(ctx, domain.UnitStatusAvailable)
}

func (s *inventoryService) ListByModel(ctx context.Context, name, category string) ([]domain.ToolUnit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ValidationError("tool name is required")
	}
	if strings.TrimSpace(category) == "" {
		return nil, domain.ValidationError("tool category is required")
	}
	return s.unitRepo.ListByNameAndCategory(ctx, name, category)
}

func (s *inventoryService) StockSummary(ctx context.Context) ([]domain.StockSummary, error) {
	return s.unitRepo.StockSummary(ctx)
}
