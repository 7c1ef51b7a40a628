package implementation

import (
	"context"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/mapper"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/model"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/contract"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewSlotRepository(db *gorm.DB) contract.SlotRepository {
	return &SlotRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *SlotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SlotRepositoryImpl) Create(ctx context.Context, slot *entity.Slot) error {
	m := r.mapper.SlotToModel(slot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*slot = *r.mapper.SlotToEntity(m)
	return nil
}

func (r *SlotRepositoryImpl) CreateBulk(ctx context.Context, slots []*entity.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	models := make([]*model.Slot, len(slots))
	for i, s := range slots {
		models[i] = r.mapper.SlotToModel(s)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*slots[i] = *r.mapper.SlotToEntity(m)
	}
	return nil
}

func (r *SlotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Slot, error) {
	var models []*model.Slot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Slot, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SlotToEntity(m)
	}
	return entities, nil
}

func (r *SlotRepositoryImpl) FindLatestValuesBySession(ctx context.Context, sessionId uuid.UUID) (map[string]string, error) {
	type row struct {
		Name  string
		Value string
	}
	var rows []row

	// DISTINCT ON keeps the newest value per slot name across the session
	err := r.db.WithContext(ctx).
		Table("slots").
		Select("DISTINCT ON (slots.name) slots.name, slots.value").
		Joins("JOIN turns ON turns.id = slots.turn_id").
		Where("turns.session_id = ?", sessionId).
		Order("slots.name, turns.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Name] = r.Value
	}
	return values, nil
}
