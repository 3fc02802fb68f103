package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	// Register the decoders for the accepted photo formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"penduduk_backend/internal/feature/residents/domain/entity"
)

const (
	// PageSize is the fixed number of residents per list page.
	PageSize = 15

	// maxPhotoBytes is the upload size limit for house photos (2 MB).
	maxPhotoBytes = 2 * 1024 * 1024
)

// ResidentRepository abstracts the persistence layer for resident records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ResidentRepository interface {
	// FindByID retrieves a resident by ID.
	// Returns ErrResidentNotFound when the ID does not resolve.
	FindByID(ctx context.Context, id uint) (*entity.Resident, error)

	// List returns one page of residents matching the search term, ordered
	// by nama_lengkap then ID, together with the total match count.
	// An empty term matches everything.
	List(ctx context.Context, search string, page, pageSize int) ([]entity.Resident, int64, error)

	// Create persists a new resident.
	// Returns ErrNIKAlreadyExists when the NIK collides with another record.
	Create(ctx context.Context, r *entity.Resident) error

	// Update persists changes to an existing resident.
	// Returns ErrNIKAlreadyExists when the new NIK collides with a different record.
	Update(ctx context.Context, r *entity.Resident) error

	// Delete removes a resident by ID.
	// Returns ErrResidentNotFound when no row was deleted.
	Delete(ctx context.Context, id uint) error
}

// PhotoStore abstracts the blob storage used for house photos.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (photostore).
type PhotoStore interface {
	// Save writes the photo content under the given key.
	Save(ctx context.Context, key string, content []byte, contentType string) error

	// Delete removes the photo stored under key.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for a stored key.
	URL(key string) string
}

// Actor is the authenticated caller of a resident operation.
type Actor struct {
	UserID uint
	Admin  bool
}

// managePolicy is the single capability check applied before every mutating
// operation. Centralizing it here keeps the role rule out of the individual
// operations.
type managePolicy struct{}

func (managePolicy) canManage(a Actor) error {
	if !a.Admin {
		return ErrForbidden
	}
	return nil
}

// PhotoUpload is an uploaded house photo.
type PhotoUpload struct {
	Filename string
	Content  []byte
}

// ListResult is one page of residents plus the paging metadata the
// presentation layer needs.
type ListResult struct {
	Items      []entity.Resident
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
	Search     string
	CanManage  bool
}

// ResidentUsecase provides the resident query and mutation service.
type ResidentUsecase struct {
	repo   ResidentRepository
	photos PhotoStore
	policy managePolicy
}

// NewResidentUsecase creates a new ResidentUsecase.
func NewResidentUsecase(repo ResidentRepository, photos PhotoStore) *ResidentUsecase {
	return &ResidentUsecase{repo: repo, photos: photos}
}

// List returns one page of residents matching the search term.
// Available to any authenticated actor. The search term has no format
// constraint; an empty term means "no filter".
func (u *ResidentUsecase) List(ctx context.Context, actor Actor, search string, page int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := u.repo.List(ctx, search, page, PageSize)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    PageSize,
		TotalPages: totalPages,
		Search:     search,
		CanManage:  actor.Admin,
	}, nil
}

// Get retrieves a single resident. Available to any authenticated actor.
func (u *ResidentUsecase) Get(ctx context.Context, actor Actor, id uint) (*entity.Resident, error) {
	return u.repo.FindByID(ctx, id)
}

// Create validates the input and persists a new resident, storing the house
// photo first when one is supplied. Validation collects every violation
// before returning. A NIK collision from the store propagates unchanged.
func (u *ResidentUsecase) Create(ctx context.Context, actor Actor, in ResidentInput, photo *PhotoUpload) (*entity.Resident, error) {
	if err := u.policy.canManage(actor); err != nil {
		return nil, err
	}
	if err := u.validate(in, photo); err != nil {
		return nil, err
	}

	var r entity.Resident
	in.apply(&r)

	if photo != nil {
		key, err := u.savePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		r.FotoRumah = &key
	}

	if err := u.repo.Create(ctx, &r); err != nil {
		// Don't leave the freshly saved photo orphaned.
		if r.FotoRumah != nil {
			u.deletePhoto(ctx, *r.FotoRumah)
		}
		return nil, err
	}
	slog.Info("resident created", "id", r.ID, "nik", r.NIK, "user_id", actor.UserID)
	return &r, nil
}

// Update validates the input and replaces the writable fields of an existing
// resident. When a new photo is supplied the previous file is deleted
// best-effort after the record is updated; a failed deletion is logged, not
// surfaced. When no photo is supplied the existing reference is preserved.
func (u *ResidentUsecase) Update(ctx context.Context, actor Actor, id uint, in ResidentInput, photo *PhotoUpload) (*entity.Resident, error) {
	if err := u.policy.canManage(actor); err != nil {
		return nil, err
	}
	r, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.validate(in, photo); err != nil {
		return nil, err
	}

	var oldKey string
	if photo != nil {
		if r.FotoRumah != nil {
			oldKey = *r.FotoRumah
		}
		key, err := u.savePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		r.FotoRumah = &key
	}

	in.apply(r)

	if err := u.repo.Update(ctx, r); err != nil {
		// Keep the old file current; remove the one we just wrote.
		if photo != nil && r.FotoRumah != nil {
			u.deletePhoto(ctx, *r.FotoRumah)
		}
		return nil, err
	}

	// The record now points at the new file; the old one must not linger.
	if oldKey != "" {
		u.deletePhoto(ctx, oldKey)
	}
	slog.Info("resident updated", "id", r.ID, "nik", r.NIK, "user_id", actor.UserID)
	return r, nil
}

// Delete removes a resident and, best-effort, its house photo. An orphaned
// file is preferred over a stuck record, so a failed file deletion is logged
// and the record deletion proceeds.
func (u *ResidentUsecase) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := u.policy.canManage(actor); err != nil {
		return err
	}
	r, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.HasHousePhoto() {
		u.deletePhoto(ctx, *r.FotoRumah)
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("resident deleted", "id", id, "nik", r.NIK, "user_id", actor.UserID)
	return nil
}

// PhotoURL resolves the public URL of a resident's house photo.
// Returns "" when the resident has none.
func (u *ResidentUsecase) PhotoURL(r *entity.Resident) string {
	if !r.HasHousePhoto() {
		return ""
	}
	return u.photos.URL(*r.FotoRumah)
}

// validate runs the non-short-circuiting field validation, including the
// photo rules, and returns a *ValidationError carrying every violation.
func (u *ResidentUsecase) validate(in ResidentInput, photo *PhotoUpload) error {
	ve := validateResident(in, time.Now())
	if fes := validatePhoto(photo); len(fes) > 0 {
		if ve == nil {
			ve = &ValidationError{}
		}
		ve.Fields = append(ve.Fields, fes...)
	}
	if ve != nil {
		return ve
	}
	return nil
}

// validatePhoto checks the upload size and that the content decodes as one
// of the accepted image formats.
func validatePhoto(p *PhotoUpload) []FieldError {
	if p == nil {
		return nil
	}
	if len(p.Content) > maxPhotoBytes {
		return []FieldError{{Field: "foto_rumah", Rule: "max", Message: "Ukuran gambar maksimal 2MB."}}
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(p.Content))
	if err != nil {
		return []FieldError{{Field: "foto_rumah", Rule: "image", Message: "File harus berupa gambar."}}
	}
	switch format {
	case "jpeg", "png", "gif":
		return nil
	default:
		return []FieldError{{Field: "foto_rumah", Rule: "mimes", Message: "Format gambar harus JPEG, PNG, JPG, atau GIF."}}
	}
}

// savePhoto stores the upload under a fresh time-prefixed key.
// A save failure is fatal for the surrounding operation: the record must not
// reference a file that does not exist.
func (u *ResidentUsecase) savePhoto(ctx context.Context, p *PhotoUpload) (string, error) {
	key := fmt.Sprintf("house-photos/%d_%s", time.Now().UnixNano(), filepath.Base(p.Filename))
	contentType := photoContentType(p.Content)
	if err := u.photos.Save(ctx, key, p.Content, contentType); err != nil {
		slog.Error("house photo save failed", "key", key, "error", err)
		return "", fmt.Errorf("%w: %v", ErrPhotoStorage, err)
	}
	return key, nil
}

// deletePhoto removes a stored photo, logging instead of failing.
// All deletion paths are best-effort per the accepted consistency model.
func (u *ResidentUsecase) deletePhoto(ctx context.Context, key string) {
	if err := u.photos.Delete(ctx, key); err != nil {
		slog.Warn("house photo delete failed", "key", key, "error", err)
	}
}

// photoContentType maps the decoded image format to a MIME type.
func photoContentType(content []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "application/octet-stream"
	}
	return "image/" + format
}
