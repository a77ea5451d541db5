package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/orders"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación del puerto EquipmentRepository sobre PostgreSQL (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador de persistencia para equipos. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

// Create persiste un nuevo equipo retornable.
func (r *EquipmentRepo) Create(equipment *entity.Equipment) error {
	query := `
		INSERT INTO equipment (id, company_id, name, normalized_name, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		equipment.ID, equipment.CompanyID, equipment.Name, orders.NormalizeName(equipment.Name),
		equipment.Stock, equipment.CreatedAt, equipment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *EquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	query := `
		SELECT id, company_id, name, stock, created_at, updated_at
		FROM equipment WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName obtiene un equipo por empresa y nombre normalizado.
func (r *EquipmentRepo) GetByName(companyID, normalizedName string) (*entity.Equipment, error) {
	query := `
		SELECT id, company_id, name, stock, created_at, updated_at
		FROM equipment WHERE company_id = $1 AND normalized_name = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, normalizedName))
}

// GetForUpdate obtiene un equipo con lock de fila (FOR UPDATE).
func (r *EquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	query := `
		SELECT id, company_id, name, stock, created_at, updated_at
		FROM equipment WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByCompany lista equipos por empresa con paginación.
func (r *EquipmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error) {
	query := `
		SELECT id, company_id, name, stock, created_at, updated_at
		FROM equipment WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var items []*entity.Equipment
	for rows.Next() {
		var e entity.Equipment
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Stock, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}

// Update actualiza el nombre del equipo. Stock solo cambia vía AdjustStock.
func (r *EquipmentRepo) Update(equipment *entity.Equipment) error {
	query := `
		UPDATE equipment SET name = $2, normalized_name = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		equipment.ID, equipment.Name, orders.NormalizeName(equipment.Name), equipment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update equipment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica un delta al conteo del equipo en bodega.
func (r *EquipmentRepo) AdjustStock(id string, delta int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE equipment SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust equipment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepo) scanOne(row pgx.Row) (*entity.Equipment, error) {
	var e entity.Equipment
	err := row.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Stock, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &e, nil
}
