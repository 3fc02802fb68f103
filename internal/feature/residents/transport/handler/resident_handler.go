// Package handler provides HTTP handlers for the residents feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"penduduk_backend/internal/feature/residents/domain/entity"
	"penduduk_backend/internal/feature/residents/transport/http/dto"
	"penduduk_backend/internal/feature/residents/usecase"
	jwtmw "penduduk_backend/internal/platform/jwt"
)

// dateLayout is the wire format of tanggal_lahir.
const dateLayout = "2006-01-02"

// ResidentUsecase defines the resident service operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ResidentUsecase interface {
	List(ctx context.Context, actor usecase.Actor, search string, page int) (*usecase.ListResult, error)
	Get(ctx context.Context, actor usecase.Actor, id uint) (*entity.Resident, error)
	Create(ctx context.Context, actor usecase.Actor, in usecase.ResidentInput, photo *usecase.PhotoUpload) (*entity.Resident, error)
	Update(ctx context.Context, actor usecase.Actor, id uint, in usecase.ResidentInput, photo *usecase.PhotoUpload) (*entity.Resident, error)
	Delete(ctx context.Context, actor usecase.Actor, id uint) error
	PhotoURL(r *entity.Resident) string
}

// ResidentHandler handles the seven-route resident resource surface.
// It owns request shape conversion and status mapping; all business rules
// live in the usecase.
type ResidentHandler struct {
	uc ResidentUsecase
}

// NewResidentHandler creates a new ResidentHandler.
func NewResidentHandler(uc ResidentUsecase) *ResidentHandler {
	return &ResidentHandler{uc: uc}
}

// List handles GET /residents. Supports ?search= and ?page=.
func (h *ResidentHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := h.uc.List(c.Request.Context(), actorFrom(c), q.Search, q.Page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]dto.ResidentItem, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, h.toItem(&result.Items[i]))
	}
	c.JSON(http.StatusOK, dto.ListResponse{
		Data: items,
		Meta: dto.PageMeta{
			Page:       result.Page,
			PerPage:    result.PerPage,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Search:    result.Search,
		CanManage: result.CanManage,
	})
}

// Show handles GET /residents/:id.
func (h *ResidentHandler) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := actorFrom(c)
	r, err := h.uc.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ShowResponse{Data: h.toItem(r), CanManage: actor.Admin})
}

// New handles GET /residents/new: the create-form metadata. Admin only.
func (h *ResidentHandler) New(c *gin.Context) {
	if !actorFrom(c).Admin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": formOptions()})
}

// Edit handles GET /residents/:id/edit: the record plus form metadata. Admin only.
func (h *ResidentHandler) Edit(c *gin.Context) {
	if !actorFrom(c).Admin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	r, err := h.uc.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EditResponse{Data: h.toItem(r), Options: formOptions()})
}

// Store handles POST /residents (multipart).
func (h *ResidentHandler) Store(c *gin.Context) {
	in, photo, ok := h.bindForm(c)
	if !ok {
		return
	}
	r, err := h.uc.Create(c.Request.Context(), actorFrom(c), in, photo)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ShowResponse{Data: h.toItem(r), CanManage: true})
}

// Update handles PUT /residents/:id (multipart).
func (h *ResidentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	in, photo, ok := h.bindForm(c)
	if !ok {
		return
	}
	r, err := h.uc.Update(c.Request.Context(), actorFrom(c), id, in, photo)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ShowResponse{Data: h.toItem(r), CanManage: true})
}

// Destroy handles DELETE /residents/:id.
func (h *ResidentHandler) Destroy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data penduduk berhasil dihapus."})
}

// bindForm converts the multipart body into a ResidentInput and optional
// photo upload. Only shape conversion happens here; field rules are the
// usecase's job so violations accumulate.
func (h *ResidentHandler) bindForm(c *gin.Context) (usecase.ResidentInput, *usecase.PhotoUpload, bool) {
	var form dto.ResidentForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("resident form binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return usecase.ResidentInput{}, nil, false
	}

	in := usecase.ResidentInput{
		NIK:              form.NIK,
		NamaLengkap:      form.NamaLengkap,
		TempatLahir:      form.TempatLahir,
		JenisKelamin:     form.JenisKelamin,
		Agama:            form.Agama,
		StatusPerkawinan: form.StatusPerkawinan,
		Pekerjaan:        form.Pekerjaan,
		AlamatLengkap:    form.AlamatLengkap,
		NomorTelepon:     form.NomorTelepon,
		Email:            form.Email,
		Latitude:         form.Latitude,
		Longitude:        form.Longitude,
	}
	if form.TanggalLahir != "" {
		t, err := time.Parse(dateLayout, form.TanggalLahir)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
				Error: "validation failed",
				Fields: []dto.FieldErrorItem{
					{Field: "tanggal_lahir", Rule: "date", Message: "Format tanggal lahir tidak valid."},
				},
			})
			return usecase.ResidentInput{}, nil, false
		}
		in.TanggalLahir = t
	}

	photo, err := readPhoto(c)
	if err != nil {
		slog.Warn("photo upload read failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return usecase.ResidentInput{}, nil, false
	}
	return in, photo, true
}

// readPhoto extracts the optional foto_rumah file part.
func readPhoto(c *gin.Context) (*usecase.PhotoUpload, error) {
	fh, err := c.FormFile("foto_rumah")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &usecase.PhotoUpload{Filename: fh.Filename, Content: content}, nil
}

// respondError maps usecase errors onto HTTP statuses:
// 403 forbidden, 404 not found, 409 duplicate NIK, 422 validation, 500 otherwise.
func (h *ResidentHandler) respondError(c *gin.Context, err error) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make([]dto.FieldErrorItem, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			fields = append(fields, dto.FieldErrorItem{Field: f.Field, Rule: f.Rule, Message: f.Message})
		}
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
	case errors.Is(err, usecase.ErrResidentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resident not found"})
	case errors.Is(err, usecase.ErrNIKAlreadyExists):
		c.JSON(http.StatusConflict, dto.ValidationErrorResponse{
			Error: "validation failed",
			Fields: []dto.FieldErrorItem{
				{Field: "nik", Rule: "unique", Message: "NIK sudah terdaftar."},
			},
		})
	default:
		slog.Error("resident operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// toItem maps an entity to its response projection.
func (h *ResidentHandler) toItem(r *entity.Resident) dto.ResidentItem {
	return dto.ResidentItem{
		ID:               r.ID,
		NIK:              r.NIK,
		NamaLengkap:      r.NamaLengkap,
		TempatLahir:      r.TempatLahir,
		TanggalLahir:     r.TanggalLahir.Format(dateLayout),
		Age:              r.Age(time.Now()),
		JenisKelamin:     r.JenisKelamin,
		Agama:            r.Agama,
		StatusPerkawinan: r.StatusPerkawinan,
		Pekerjaan:        r.Pekerjaan,
		AlamatLengkap:    r.AlamatLengkap,
		NomorTelepon:     r.NomorTelepon,
		Email:            r.Email,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		FotoRumah:        r.FotoRumah,
		FotoRumahURL:     h.uc.PhotoURL(r),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// actorFrom builds the service actor from the values the JWT middleware
// stored in the context.
func actorFrom(c *gin.Context) usecase.Actor {
	return usecase.Actor{
		UserID: c.GetUint(jwtmw.ContextUserID),
		Admin:  c.GetBool(jwtmw.ContextIsAdmin),
	}
}

// idParam parses the :id path parameter, answering 404 for garbage.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "resident not found"})
		return 0, false
	}
	return uint(id), true
}

// formOptions returns the enum choices for the create and edit forms.
func formOptions() dto.FormOptions {
	return dto.FormOptions{
		JenisKelamin:     entity.JenisKelaminValues,
		Agama:            entity.AgamaValues,
		StatusPerkawinan: entity.StatusPerkawinanValues,
	}
}
