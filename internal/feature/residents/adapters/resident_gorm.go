// Package adapters provides repository implementations for the residents feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"penduduk_backend/internal/feature/residents/domain/entity"
	"penduduk_backend/internal/feature/residents/usecase"
)

// searchClause is the disjunction behind the registry search box: a term
// matches when it is a case-insensitive substring of any of the seven
// searchable columns.
const searchClause = "LOWER(nik) LIKE ? OR LOWER(nama_lengkap) LIKE ? OR LOWER(tempat_lahir) LIKE ? " +
	"OR LOWER(pekerjaan) LIKE ? OR LOWER(alamat_lengkap) LIKE ? OR LOWER(nomor_telepon) LIKE ? OR LOWER(email) LIKE ?"

// residentGorm is the GORM implementation of the ResidentRepository interface.
type residentGorm struct {
	db *gorm.DB
}

// Compile-time check that residentGorm implements ResidentRepository.
var _ usecase.ResidentRepository = (*residentGorm)(nil)

// NewResidentRepository creates a new resident repository on the given gorm.DB.
func NewResidentRepository(db *gorm.DB) *residentGorm {
	return &residentGorm{db: db}
}

// FindByID retrieves a resident by ID.
// Returns usecase.ErrResidentNotFound when the ID does not resolve.
func (r *residentGorm) FindByID(ctx context.Context, id uint) (*entity.Resident, error) {
	var res entity.Resident
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrResidentNotFound
		}
		return nil, err
	}
	return &res, nil
}

// List returns one page of residents matching the search term and the total
// match count. Ordering is nama_lengkap ascending with ID as tiebreaker so
// pagination stays deterministic. An empty term matches everything.
func (r *residentGorm) List(ctx context.Context, search string, page, pageSize int) ([]entity.Resident, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Resident{})

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where(searchClause, term, term, term, term, term, term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var residents []entity.Resident
	if err := q.Order("nama_lengkap ASC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&residents).Error; err != nil {
		return nil, 0, err
	}
	return residents, total, nil
}

// Create inserts a new resident.
// A NIK collision is reported as usecase.ErrNIKAlreadyExists. The unique
// index decides; two racing inserts pass any pre-check but only one wins here.
func (r *residentGorm) Create(ctx context.Context, res *entity.Resident) error {
	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrNIKAlreadyExists
		}
		return err
	}
	return nil
}

// Update saves the full record.
// A NIK collision with a different record is reported as usecase.ErrNIKAlreadyExists.
func (r *residentGorm) Update(ctx context.Context, res *entity.Resident) error {
	if err := r.db.WithContext(ctx).Save(res).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrNIKAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a resident by ID.
// Returns usecase.ErrResidentNotFound when no row was deleted, so callers
// can distinguish a stale ID. Deletion is not idempotent at this layer.
func (r *residentGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Resident{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrResidentNotFound
	}
	return nil
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// Postgres signals SQLSTATE 23505; the GORM drivers additionally translate
// to gorm.ErrDuplicatedKey, which also covers the sqlite test database.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
