package dto

import "time"

// ResidentItem is the read projection of a resident handed to clients,
// including the derived age and resolved photo URL.
type ResidentItem struct {
	ID               uint      `json:"id"`
	NIK              string    `json:"nik"`
	NamaLengkap      string    `json:"nama_lengkap"`
	TempatLahir      string    `json:"tempat_lahir"`
	TanggalLahir     string    `json:"tanggal_lahir"`
	Age              int       `json:"age"`
	JenisKelamin     string    `json:"jenis_kelamin"`
	Agama            string    `json:"agama"`
	StatusPerkawinan string    `json:"status_perkawinan"`
	Pekerjaan        string    `json:"pekerjaan"`
	AlamatLengkap    string    `json:"alamat_lengkap"`
	NomorTelepon     *string   `json:"nomor_telepon"`
	Email            *string   `json:"email"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	FotoRumah        *string   `json:"foto_rumah"`
	FotoRumahURL     string    `json:"foto_rumah_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PageMeta carries the pagination metadata of a list response.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListResponse is the body of the list endpoint.
type ListResponse struct {
	Data      []ResidentItem `json:"data"`
	Meta      PageMeta       `json:"meta"`
	Search    string         `json:"search"`
	CanManage bool           `json:"can_manage"`
}

// ShowResponse is the body of the show endpoint.
type ShowResponse struct {
	Data      ResidentItem `json:"data"`
	CanManage bool         `json:"can_manage"`
}

// FormOptions carries the enum choices the create and edit forms render.
type FormOptions struct {
	JenisKelamin     []string `json:"jenis_kelamin"`
	Agama            []string `json:"agama"`
	StatusPerkawinan []string `json:"status_perkawinan"`
}

// EditResponse is the body of the edit-form endpoint.
type EditResponse struct {
	Data    ResidentItem `json:"data"`
	Options FormOptions  `json:"options"`
}

// FieldErrorItem is a single field-level validation violation.
type FieldErrorItem struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the 422 body listing every violation.
type ValidationErrorResponse struct {
	Error  string           `json:"error"`
	Fields []FieldErrorItem `json:"fields"`
}
