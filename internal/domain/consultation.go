package domain

import "time"

// Consultation es el registro de una sesión de consulta entre un doctor
// y una mascota. El vínculo pet/doctor es inmutable después de creado;
// no existe operación de reasignación.
type Consultation struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	PetID     string    `json:"pet_id"`
	DoctorID  string    `json:"doctor_id"`
	Report    string    `json:"report,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
