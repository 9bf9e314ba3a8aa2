package itemrepo

import (
	"context"
	"errors"

	"courier/internal/core/domain/model/item"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// itemIDLockKey names the advisory lock that serializes id allocation.
const itemIDLockKey int64 = 7_304_117

// GormItemRepository implements ports.ItemRepository using GORM.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(kind ports.ChangeKind, aggregate any)
}

func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// NextID takes a transaction scoped advisory lock, then reads max(id)+1.
// The lock is held until the surrounding transaction ends, so the insert
// that uses the id cannot be raced by another allocator.
func (r *GormItemRepository) NextID(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)

	if err := db.Exec("SELECT pg_advisory_xact_lock(?)", itemIDLockKey).Error; err != nil {
		return 0, errs.NewStorageError("lock item id", err)
	}

	var next int64
	if err := db.Raw("SELECT COALESCE(MAX(id), 0) + 1 FROM items").Scan(&next).Error; err != nil {
		return 0, errs.NewStorageError("next item id", err)
	}

	return next, nil
}

func (r *GormItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageError("insert item", err)
	}

	r.tracker.TrackAggregate(ports.AggregateAdded, aggregate)
	return nil
}

// Update writes state and the three receiving date columns in one statement.
func (r *GormItemRepository) Update(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"state":           dto.State,
			"receiving_year":  dto.ReceivingYear,
			"receiving_month": dto.ReceivingMonth,
			"receiving_day":   dto.ReceivingDay,
		})
	if result.Error != nil {
		return errs.NewStorageError("update item", result.Error)
	}
	if result.RowsAffected != 1 {
		return errs.NewObjectNotFoundError("item", dto.ID)
	}

	r.tracker.TrackAggregate(ports.AggregateUpdated, aggregate)
	return nil
}

func (r *GormItemRepository) Get(ctx context.Context, id int64) (*item.Item, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormItemRepository) GetForUpdate(ctx context.Context, id int64) (*item.Item, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormItemRepository) get(db *gorm.DB, id int64) (*item.Item, error) {
	var dto ItemDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", id)
		}
		return nil, errs.NewStorageError("select item", err)
	}

	return toDomain(dto)
}

// Find ANDs every set field of filter. Unset fields add no predicate.
func (r *GormItemRepository) Find(ctx context.Context, filter item.Filter) ([]*item.Item, error) {
	q := r.db.WithContext(ctx).Model(&ItemDTO{})

	if filter.ID != nil {
		q = q.Where("id = ?", *filter.ID)
	}
	q = whereDateParts(q, "sending", filter.SendingDate)
	q = whereDateParts(q, "receiving", filter.ReceivingDate)
	if filter.Sender != nil {
		q = q.Where("src_username = ?", *filter.Sender)
	}
	if filter.Recipient != nil {
		q = q.Where("dst_username = ?", *filter.Recipient)
	}

	var dtos []ItemDTO
	if err := q.Order("id").Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageError("find items", err)
	}

	items := make([]*item.Item, 0, len(dtos))
	for _, dto := range dtos {
		it, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, nil
}

func (r *GormItemRepository) Delete(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ItemDTO{}, "id = ?", aggregate.ID())
	if result.Error != nil {
		return errs.NewStorageError("delete item", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", aggregate.ID())
	}

	r.tracker.TrackAggregate(ports.AggregateRemoved, aggregate)
	return nil
}

// whereDateParts adds one predicate per set part. prefix is "sending" or "receiving".
func whereDateParts(q *gorm.DB, prefix string, parts item.DateParts) *gorm.DB {
	if parts.Year != nil {
		q = q.Where(prefix+"_year = ?", *parts.Year)
	}
	if parts.Month != nil {
		q = q.Where(prefix+"_month = ?", *parts.Month)
	}
	if parts.Day != nil {
		q = q.Where(prefix+"_day = ?", *parts.Day)
	}
	return q
}
