package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, rut, name, last_name, email, phone_number, username, COALESCE(role, ''), status, created_on`

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (rut, name, last_name, email, phone_number, username, role, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	c.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, c.Rut, c.Name, c.LastName, c.Email, c.PhoneNumber, c.Username, c.Role, c.Status, c.CreatedOn).Scan(&c.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *clientRepository) GetByRut(ctx context.Context, rut string) (*domain.Client, error) {
	return r.getBy(ctx, `WHERE rut = $1`, rut)
}

func (r *clientRepository) GetByUsername(ctx context.Context, username string) (*domain.Client, error) {
	return r.getBy(ctx, `WHERE username = $1`, username)
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *clientRepository) GetByPhoneNumber(ctx context.Context, phone string) (*domain.Client, error) {
	return r.getBy(ctx, `WHERE phone_number = $1`, phone)
}

func (r *clientRepository) getBy(ctx context.Context, where string, arg any) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients ` + where
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Rut, &c.Name, &c.LastName, &c.Email, &c.PhoneNumber, &c.Username, &c.Role, &c.Status, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("client not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Rut, &c.Name, &c.LastName, &c.Email, &c.PhoneNumber, &c.Username, &c.Role, &c.Status, &c.CreatedOn); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET rut=$1, name=$2, last_name=$3, email=$4, phone_number=$5, username=$6, role=$7, status=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, c.Rut, c.Name, c.LastName, c.Email, c.PhoneNumber, c.Username, c.Role, c.Status, c.ID)
	return err
}

func (r *clientRepository) UpdateStatus(ctx context.Context, id int64, status domain.ClientStatus) error {
	query := `UPDATE clients SET status=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}
