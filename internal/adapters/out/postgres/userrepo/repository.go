package userrepo

import (
	"context"
	"errors"

	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(kind ports.ChangeKind, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new user row.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewObjectAlreadyExistsError("username", dto.Username)
		}
		return errs.NewStorageError("insert user", err)
	}

	r.tracker.TrackAggregate(ports.AggregateAdded, aggregate)
	return nil
}

// Update writes password and balance; the other columns are immutable.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("username = ?", dto.Username).
		Updates(map[string]any{
			"password": dto.Password,
			"balance":  dto.Balance,
		})
	if result.Error != nil {
		return errs.NewStorageError("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", dto.Username)
	}

	r.tracker.TrackAggregate(ports.AggregateUpdated, aggregate)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, username string) (*user.User, error) {
	return r.get(r.db.WithContext(ctx), username)
}

// GetForUpdate locks the row with SELECT ... FOR UPDATE.
func (r *GormUserRepository) GetForUpdate(ctx context.Context, username string) (*user.User, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), username)
}

func (r *GormUserRepository) get(db *gorm.DB, username string) (*user.User, error) {
	var dto UserDTO
	if err := db.First(&dto, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", username)
		}
		return nil, errs.NewStorageError("select user", err)
	}

	return toDomain(dto)
}
