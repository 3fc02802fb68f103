package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestValidateResident(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	t.Run("valid input has no violations", func(t *testing.T) {
		assert.Nil(t, validateResident(validInput(), now))
	})

	t.Run("valid input with all optional fields", func(t *testing.T) {
		in := validInput()
		in.NomorTelepon = strPtr("+62 812-3456-7890")
		in.Email = strPtr("warga@example.com")
		in.Latitude = floatPtr(-6.2)
		in.Longitude = floatPtr(106.8)
		assert.Nil(t, validateResident(in, now))
	})

	tests := []struct {
		name    string
		mutate  func(in *ResidentInput)
		field   string
		rule    string
		message string
	}{
		{
			name:    "nik required",
			mutate:  func(in *ResidentInput) { in.NIK = "" },
			field:   "nik",
			rule:    "required",
			message: "NIK wajib diisi.",
		},
		{
			name:   "nik wrong length",
			mutate: func(in *ResidentInput) { in.NIK = "12345" },
			field:  "nik",
			rule:   "size",
		},
		{
			name:   "nik non-numeric",
			mutate: func(in *ResidentInput) { in.NIK = "32010115039000AB" },
			field:  "nik",
			rule:   "digits",
		},
		{
			name:   "nama required",
			mutate: func(in *ResidentInput) { in.NamaLengkap = "" },
			field:  "nama_lengkap",
			rule:   "required",
		},
		{
			name:   "nama too long",
			mutate: func(in *ResidentInput) { in.NamaLengkap = strings.Repeat("a", 256) },
			field:  "nama_lengkap",
			rule:   "max",
		},
		{
			name:   "tempat lahir required",
			mutate: func(in *ResidentInput) { in.TempatLahir = "" },
			field:  "tempat_lahir",
			rule:   "required",
		},
		{
			name:   "tanggal lahir required",
			mutate: func(in *ResidentInput) { in.TanggalLahir = time.Time{} },
			field:  "tanggal_lahir",
			rule:   "required",
		},
		{
			name:   "tanggal lahir today is rejected",
			mutate: func(in *ResidentInput) { in.TanggalLahir = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC) },
			field:  "tanggal_lahir",
			rule:   "before",
		},
		{
			name:   "tanggal lahir in the future",
			mutate: func(in *ResidentInput) { in.TanggalLahir = now.AddDate(1, 0, 0) },
			field:  "tanggal_lahir",
			rule:   "before",
		},
		{
			name:   "jenis kelamin required",
			mutate: func(in *ResidentInput) { in.JenisKelamin = "" },
			field:  "jenis_kelamin",
			rule:   "required",
		},
		{
			name:   "jenis kelamin outside the enum",
			mutate: func(in *ResidentInput) { in.JenisKelamin = "Lainnya" },
			field:  "jenis_kelamin",
			rule:   "in",
		},
		{
			name:   "agama outside the enum",
			mutate: func(in *ResidentInput) { in.Agama = "Jedi" },
			field:  "agama",
			rule:   "in",
		},
		{
			name:   "status perkawinan outside the enum",
			mutate: func(in *ResidentInput) { in.StatusPerkawinan = "Rumit" },
			field:  "status_perkawinan",
			rule:   "in",
		},
		{
			name:   "pekerjaan required",
			mutate: func(in *ResidentInput) { in.Pekerjaan = "" },
			field:  "pekerjaan",
			rule:   "required",
		},
		{
			name:   "alamat required",
			mutate: func(in *ResidentInput) { in.AlamatLengkap = "" },
			field:  "alamat_lengkap",
			rule:   "required",
		},
		{
			name:   "telepon too long",
			mutate: func(in *ResidentInput) { in.NomorTelepon = strPtr("0812345678901234") },
			field:  "nomor_telepon",
			rule:   "max",
		},
		{
			name:   "telepon with letters",
			mutate: func(in *ResidentInput) { in.NomorTelepon = strPtr("0812-ABC") },
			field:  "nomor_telepon",
			rule:   "format",
		},
		{
			name:   "email malformed",
			mutate: func(in *ResidentInput) { in.Email = strPtr("not-an-email") },
			field:  "email",
			rule:   "email",
		},
		{
			name:   "latitude out of range",
			mutate: func(in *ResidentInput) { in.Latitude = floatPtr(91) },
			field:  "latitude",
			rule:   "between",
		},
		{
			name:   "longitude out of range",
			mutate: func(in *ResidentInput) { in.Longitude = floatPtr(-180.5) },
			field:  "longitude",
			rule:   "between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			ve := validateResident(in, now)

			require.NotNil(t, ve, "expected a violation")
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
			assert.Equal(t, tt.rule, ve.Fields[0].Rule)
			if tt.message != "" {
				assert.Equal(t, tt.message, ve.Fields[0].Message)
			}
			assert.NotEmpty(t, ve.Fields[0].Message)
		})
	}

	t.Run("empty optional strings are not validated", func(t *testing.T) {
		in := validInput()
		in.NomorTelepon = strPtr("")
		in.Email = strPtr("")
		assert.Nil(t, validateResident(in, now))
	})

	t.Run("only one coordinate set is allowed", func(t *testing.T) {
		in := validInput()
		in.Latitude = floatPtr(-6.9)
		assert.Nil(t, validateResident(in, now))
	})

	t.Run("boundary coordinates are valid", func(t *testing.T) {
		in := validInput()
		in.Latitude = floatPtr(-90)
		in.Longitude = floatPtr(180)
		assert.Nil(t, validateResident(in, now))
	})

	t.Run("violations accumulate across fields", func(t *testing.T) {
		in := ResidentInput{}
		ve := validateResident(in, now)
		require.NotNil(t, ve)
		assert.GreaterOrEqual(t, len(ve.Fields), 8, "every required field should be reported at once")
	})
}

func TestValidationError_Error(t *testing.T) {
	ve := &ValidationError{}
	ve.add("nik", "required", "NIK wajib diisi.")
	ve.add("email", "email", "Format email tidak valid.")

	msg := ve.Error()

	assert.Contains(t, msg, "nik: NIK wajib diisi.")
	assert.Contains(t, msg, "email: Format email tidak valid.")
}
