package domain

import "time"

// Pet pertenece exclusivamente a un owner. No puede haber dos mascotas
// con el mismo nombre bajo el mismo owner.
type Pet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
