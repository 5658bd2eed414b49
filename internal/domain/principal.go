package domain

import "time"

// Owner es un dueño de mascotas registrado en la clínica.
type Owner struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Doctor es un veterinario registrado en la clínica.
type Doctor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal es el resumen de un actor autenticado, de exactamente
// una de las dos variantes (owner o doctor).
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AsPrincipal devuelve el resumen autenticable del owner.
func (o Owner) AsPrincipal() Principal {
	return Principal{ID: o.ID, Name: o.Name, Email: o.Email, Role: RoleOwner}
}

// AsPrincipal devuelve el resumen autenticable del doctor.
func (d Doctor) AsPrincipal() Principal {
	return Principal{ID: d.ID, Name: d.Name, Email: d.Email, Role: RoleDoctor}
}
