package service

import (
	"context"
	"strings"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
	loanRepo   repository.LoanRepository
	now        func() time.Time
}

func NewClientService(clientRepo repository.ClientRepository, loanRepo repository.LoanRepository) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		loanRepo:   loanRepo,
		now:        time.Now,
	}
}

func (s *clientService) Register(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if strings.TrimSpace(client.Rut) == "" {
		return nil, domain.ValidationError("rut is required")
	}

	// Only a not-found answer means the identifier is free; any other lookup
	// failure must not be mistaken for availability.
	existing, err := s.clientRepo.GetByRut(ctx, client.Rut)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ConflictError("rut %s is already registered", client.Rut)
	}
	existing, err = s.clientRepo.GetByUsername(ctx, client.Username)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ConflictError("username %s is already in use", client.Username)
	}
	existing, err = s.clientRepo.GetByEmail(ctx, client.Email)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ConflictError("email %s is already registered", client.Email)
	}
	existing, err = s.clientRepo.GetByPhoneNumber(ctx, client.PhoneNumber)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ConflictError("phone number %s is already registered", client.PhoneNumber)
	}

	if client.Status == "" {
		client.Status = domain.ClientStatusActive
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clientRepo.List(ctx)
}

func (s *clientService) Update(ctx context.Context, id int64, details *domain.Client) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Rut = details.Rut
	client.Name = details.Name
	client.LastName = details.LastName
	client.Email = details.Email
	client.PhoneNumber = details.PhoneNumber
	client.Username = details.Username
	client.Role = details.Role
	client.Status = details.Status
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) HasUnpaidFines(ctx context.Context, id int64) (bool, error) {
	count, err := s.loanRepo.CountUnpaidByClient(ctx, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *clientService) HasOverdueLoans(ctx context.Context, id int64) (bool, error) {
	count, err := s.loanRepo.CountOverdueByClient(ctx, id, s.now())
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
