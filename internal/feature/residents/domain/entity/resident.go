// Package entity defines the domain entities for the residents feature.
package entity

import "time"

// JenisKelamin enumerates the gender values accepted by the registry.
const (
	JenisKelaminLakiLaki  = "Laki-laki"
	JenisKelaminPerempuan = "Perempuan"
)

// JenisKelaminValues lists every valid jenis_kelamin value.
var JenisKelaminValues = []string{JenisKelaminLakiLaki, JenisKelaminPerempuan}

// AgamaValues lists the six religions recognized by the registry.
var AgamaValues = []string{"Islam", "Kristen", "Katolik", "Hindu", "Buddha", "Konghucu"}

// StatusPerkawinanValues lists the four marital status values.
var StatusPerkawinanValues = []string{"Belum Menikah", "Menikah", "Cerai Hidup", "Cerai Mati"}

// Resident represents a single population-registry record.
// Field names follow the registry's administrative vocabulary (NIK is the
// 16-digit national identity number and acts as the natural key).
type Resident struct {
	// ID is the unique identifier for the resident, assigned at creation.
	ID uint `gorm:"primaryKey"`

	// NIK is the Nomor Induk Kependudukan, a 16-digit numeric string.
	// It must be unique across all residents.
	NIK string `gorm:"column:nik;uniqueIndex;size:16;not null"`

	// NamaLengkap is the resident's full name.
	NamaLengkap string `gorm:"index;size:255;not null"`

	// TempatLahir is the place of birth.
	TempatLahir string `gorm:"index:idx_residents_lahir;size:255;not null"`

	// TanggalLahir is the date of birth. Only the date part is meaningful.
	TanggalLahir time.Time `gorm:"index:idx_residents_lahir;not null"`

	// JenisKelamin is the gender, one of JenisKelaminValues.
	JenisKelamin string `gorm:"index;size:16;not null"`

	// Agama is the religion, one of AgamaValues.
	Agama string `gorm:"index;size:16;not null"`

	// StatusPerkawinan is the marital status, one of StatusPerkawinanValues.
	StatusPerkawinan string `gorm:"index;size:16;not null"`

	// Pekerjaan is the occupation.
	Pekerjaan string `gorm:"index;size:255;not null"`

	// AlamatLengkap is the complete address. Unbounded text.
	AlamatLengkap string `gorm:"type:text;not null"`

	// NomorTelepon is the optional phone number, max 15 characters.
	NomorTelepon *string `gorm:"size:15"`

	// Email is the optional email address.
	Email *string `gorm:"size:255"`

	// Latitude is the optional GPS latitude in [-90, 90].
	Latitude *float64 `gorm:"type:decimal(10,8)"`

	// Longitude is the optional GPS longitude in [-180, 180].
	Longitude *float64 `gorm:"type:decimal(11,8)"`

	// FotoRumah is the storage key of the house photo, nil when absent.
	FotoRumah *string `gorm:"size:255"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `gorm:"index"`

	// UpdatedAt is the timestamp when the record was last updated.
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (Resident) TableName() string {
	return "residents"
}

// Age returns the resident's age in whole years at the given time.
// It is derived on read and never stored.
func (r *Resident) Age(now time.Time) int {
	years := now.Year() - r.TanggalLahir.Year()
	// Birthday not yet reached this year.
	if now.Month() < r.TanggalLahir.Month() ||
		(now.Month() == r.TanggalLahir.Month() && now.Day() < r.TanggalLahir.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// HasCoordinates returns true when both latitude and longitude are set.
// Either coordinate may also be set on its own; that is intentional.
func (r *Resident) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// HasHousePhoto returns true when a house photo is stored for the resident.
func (r *Resident) HasHousePhoto() bool {
	return r.FotoRumah != nil && *r.FotoRumah != ""
}
