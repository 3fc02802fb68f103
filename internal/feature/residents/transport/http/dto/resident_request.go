// Package dto defines data transfer objects for the residents feature's HTTP transport layer.
package dto

// ResidentForm represents the multipart form body for the store and update
// endpoints. Field-level rules are enforced by the usecase validation pass,
// not by binding tags, so that every violation is reported at once; the
// binding layer only converts shapes. The house photo travels as the
// separate "foto_rumah" file part.
type ResidentForm struct {
	NIK              string   `form:"nik"`
	NamaLengkap      string   `form:"nama_lengkap"`
	TempatLahir      string   `form:"tempat_lahir"`
	TanggalLahir     string   `form:"tanggal_lahir"` // YYYY-MM-DD
	JenisKelamin     string   `form:"jenis_kelamin"`
	Agama            string   `form:"agama"`
	StatusPerkawinan string   `form:"status_perkawinan"`
	Pekerjaan        string   `form:"pekerjaan"`
	AlamatLengkap    string   `form:"alamat_lengkap"`
	NomorTelepon     *string  `form:"nomor_telepon"`
	Email            *string  `form:"email"`
	Latitude         *float64 `form:"latitude"`
	Longitude        *float64 `form:"longitude"`
}

// ListQuery represents the query parameters of the list endpoint.
type ListQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
}
