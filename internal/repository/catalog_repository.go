package repository

import (
	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"gorm.io/gorm"
)

// EquipmentRepository is the read-side port for the equipment catalog.
type EquipmentRepository interface {
	FindByID(id uint) (*model.Equipment, error)
	List(page, limit int) ([]*model.Equipment, int64, error)
}

type equipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository creates an equipment repository.
func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) FindByID(id uint) (*model.Equipment, error) {
	var equipment model.Equipment
	if err := r.db.Preload("Modality").First(&equipment, id).Error; err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) List(page, limit int) ([]*model.Equipment, int64, error) {
	var total int64
	if err := r.db.Model(&model.Equipment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	var items []*model.Equipment
	err := r.db.Preload("Modality").
		Order("serial_number ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error
	return items, total, err
}

// ClientRepository is the read-side port for the client catalog.
type ClientRepository interface {
	FindByID(id uint) (*model.Client, error)
	List(page, limit int) ([]*model.Client, int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a client repository.
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindByID(id uint) (*model.Client, error) {
	var client model.Client
	if err := r.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(page, limit int) ([]*model.Client, int64, error) {
	var total int64
	if err := r.db.Model(&model.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	var items []*model.Client
	err := r.db.Order("name ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error
	return items, total, err
}
