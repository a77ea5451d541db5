package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// EquipmentUseCase CRUD de equipos retornables.
type EquipmentUseCase struct {
	repo repository.EquipmentRepository
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo}
}

// Create crea un equipo.
func (uc *EquipmentUseCase) Create(companyID string, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if in.Name == "" || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	equipment := &entity.Equipment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Stock:     in.InitialStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(equipment); err != nil {
		return nil, err
	}
	return toEquipmentResponse(equipment), nil
}

// GetByID obtiene un equipo de la empresa.
func (uc *EquipmentUseCase) GetByID(companyID, id string) (*dto.EquipmentResponse, error) {
	equipment, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if equipment == nil || equipment.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toEquipmentResponse(equipment), nil
}

// List lista equipos de la empresa.
func (uc *EquipmentUseCase) List(companyID string, limit, offset int) ([]*dto.EquipmentResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEquipmentResponse(e))
	}
	return out, nil
}

func toEquipmentResponse(e *entity.Equipment) *dto.EquipmentResponse {
	return &dto.EquipmentResponse{ID: e.ID, Name: e.Name, Stock: e.Stock}
}
