package postgres

import (
	"database/sql"

	"toolrent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ToolUnitRepository
	repository.LoanRepository
	repository.KardexRepository
	repository.ClientRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		ToolUnitRepository: NewToolUnitRepository(db),
		LoanRepository:     NewLoanRepository(db),
		KardexRepository:   NewKardexRepository(db),
		ClientRepository:   NewClientRepository(db),
	}
}
