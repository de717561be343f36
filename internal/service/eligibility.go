package service

import (
	"context"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"
)

// maxActiveLoans is the per-client cap on simultaneously open loans.
const maxActiveLoans = 5

type eligibilityService struct {
	clientRepo repository.ClientRepository
	loanRepo   repository.LoanRepository
}

func NewEligibilityService(clientRepo repository.ClientRepository, loanRepo repository.LoanRepository) EligibilityService {
	return &eligibilityService{
		clientRepo: clientRepo,
		loanRepo:   loanRepo,
	}
}

func (s *eligibilityService) AssertCanBorrow(ctx context.Context, clientID int64) error {
	count, err := s.loanRepo.CountActiveByClient(ctx, clientID)
	if err != nil {
		return err
	}
	if count >= maxActiveLoans {
		return domain.ConflictError("client %d already has %d active loans and cannot take another", clientID, maxActiveLoans)
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.Status != domain.ClientStatusActive {
		return domain.ConflictError("client %d is not eligible for a new loan", clientID)
	}
	return nil
}

func (s *eligibilityService) AssertNoDuplicateTool(ctx context.Context, clientID int64, toolName string) error {
	count, err := s.loanRepo.CountActiveByClientAndToolName(ctx, clientID, toolName)
	if err != nil {
		return err
	}
	if count >= 1 {
		return domain.ConflictError("client %d already has an active loan for %s", clientID, toolName)
	}
	return nil
}

func (s *eligibilityService) Restrict(ctx context.Context, clientID int64) error {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.Status == domain.ClientStatusRestricted {
		return nil
	}

	if err := s.clientRepo.UpdateStatus(ctx, clientID, domain.ClientStatusRestricted); err != nil {
		return err
	}
	logger.Info("Restricted client", "client_id", clientID)
	return nil
}

func (s *eligibilityService) UpdateStatus(ctx context.Context, clientID int64, finesCleared bool) error {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return err
	}

	status := domain.ClientStatusRestricted
	if finesCleared {
		status = domain.ClientStatusActive
	}
	return s.clientRepo.UpdateStatus(ctx, clientID, status)
}
