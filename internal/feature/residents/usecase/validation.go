package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"time"

	"penduduk_backend/internal/feature/residents/domain/entity"
)

// FieldError describes a single validation violation on one field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in one validation pass.
// The pass never short-circuits, so callers can report all problems at once.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// add appends a violation to the list.
func (e *ValidationError) add(field, rule, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Rule: rule, Message: message})
}

var (
	nikPattern   = regexp.MustCompile(`^[0-9]{16}$`)
	phonePattern = regexp.MustCompile(`^[+]?[0-9\-\s()]*$`)
)

// ResidentInput carries the writable fields of a resident for create/update.
// Optional fields are pointers; nil means absent.
type ResidentInput struct {
	NIK              string
	NamaLengkap      string
	TempatLahir      string
	TanggalLahir     time.Time
	JenisKelamin     string
	Agama            string
	StatusPerkawinan string
	Pekerjaan        string
	AlamatLengkap    string
	NomorTelepon     *string
	Email            *string
	Latitude         *float64
	Longitude        *float64
}

// validateResident checks every field rule and collects all violations.
// Messages are the user-facing Indonesian texts shown on the forms.
// NIK uniqueness is not checked here; the store's unique index owns it.
func validateResident(in ResidentInput, now time.Time) *ValidationError {
	ve := &ValidationError{}

	switch {
	case in.NIK == "":
		ve.add("nik", "required", "NIK wajib diisi.")
	case len(in.NIK) != 16:
		ve.add("nik", "size", "NIK harus 16 digit.")
	case !nikPattern.MatchString(in.NIK):
		ve.add("nik", "digits", "NIK harus berupa 16 digit angka.")
	}

	if in.NamaLengkap == "" {
		ve.add("nama_lengkap", "required", "Nama lengkap wajib diisi.")
	} else if len(in.NamaLengkap) > 255 {
		ve.add("nama_lengkap", "max", "Nama lengkap maksimal 255 karakter.")
	}

	if in.TempatLahir == "" {
		ve.add("tempat_lahir", "required", "Tempat lahir wajib diisi.")
	} else if len(in.TempatLahir) > 255 {
		ve.add("tempat_lahir", "max", "Tempat lahir maksimal 255 karakter.")
	}

	if in.TanggalLahir.IsZero() {
		ve.add("tanggal_lahir", "required", "Tanggal lahir wajib diisi.")
	} else if !in.TanggalLahir.Before(startOfDay(now)) {
		ve.add("tanggal_lahir", "before", "Tanggal lahir harus sebelum hari ini.")
	}

	if in.JenisKelamin == "" {
		ve.add("jenis_kelamin", "required", "Jenis kelamin wajib dipilih.")
	} else if !slices.Contains(entity.JenisKelaminValues, in.JenisKelamin) {
		ve.add("jenis_kelamin", "in", "Jenis kelamin tidak valid.")
	}

	if in.Agama == "" {
		ve.add("agama", "required", "Agama wajib dipilih.")
	} else if !slices.Contains(entity.AgamaValues, in.Agama) {
		ve.add("agama", "in", "Agama tidak valid.")
	}

	if in.StatusPerkawinan == "" {
		ve.add("status_perkawinan", "required", "Status perkawinan wajib dipilih.")
	} else if !slices.Contains(entity.StatusPerkawinanValues, in.StatusPerkawinan) {
		ve.add("status_perkawinan", "in", "Status perkawinan tidak valid.")
	}

	if in.Pekerjaan == "" {
		ve.add("pekerjaan", "required", "Pekerjaan wajib diisi.")
	} else if len(in.Pekerjaan) > 255 {
		ve.add("pekerjaan", "max", "Pekerjaan maksimal 255 karakter.")
	}

	if in.AlamatLengkap == "" {
		ve.add("alamat_lengkap", "required", "Alamat lengkap wajib diisi.")
	}

	if in.NomorTelepon != nil && *in.NomorTelepon != "" {
		if len(*in.NomorTelepon) > 15 {
			ve.add("nomor_telepon", "max", "Nomor telepon maksimal 15 karakter.")
		} else if !phonePattern.MatchString(*in.NomorTelepon) {
			ve.add("nomor_telepon", "format", "Format nomor telepon tidak valid.")
		}
	}

	if in.Email != nil && *in.Email != "" {
		if len(*in.Email) > 255 {
			ve.add("email", "max", "Email maksimal 255 karakter.")
		} else if _, err := mail.ParseAddress(*in.Email); err != nil {
			ve.add("email", "email", "Format email tidak valid.")
		}
	}

	// Latitude and longitude are validated independently. Setting only one
	// of the pair is allowed.
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		ve.add("latitude", "between", "Latitude harus antara -90 dan 90.")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		ve.add("longitude", "between", "Longitude harus antara -180 dan 180.")
	}

	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}

// startOfDay truncates t to midnight in its location, so that "before today"
// rejects today's date but accepts yesterday's.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// apply copies the input fields onto a resident record.
func (in ResidentInput) apply(r *entity.Resident) {
	r.NIK = in.NIK
	r.NamaLengkap = in.NamaLengkap
	r.TempatLahir = in.TempatLahir
	r.TanggalLahir = in.TanggalLahir
	r.JenisKelamin = in.JenisKelamin
	r.Agama = in.Agama
	r.StatusPerkawinan = in.StatusPerkawinan
	r.Pekerjaan = in.Pekerjaan
	r.AlamatLengkap = in.AlamatLengkap
	r.NomorTelepon = in.NomorTelepon
	r.Email = in.Email
	r.Latitude = in.Latitude
	r.Longitude = in.Longitude
}
