package entities

import "time"

type User struct {
	ID         int       `json:"id"`
	Phone      string    `json:"phone"`
	Name       string    `json:"name"`
	BPJSNumber string    `json:"bpjs_number"`
	FKTPID     *int      `json:"fktp_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FKTP is a first-level health facility (clinic). Rows are seeded out of
// band; this service only reads them.
type FKTP struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Alamat    string    `json:"alamat"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
