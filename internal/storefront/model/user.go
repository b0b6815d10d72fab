package model

type UserRole string

const (
	RoleBuyer UserRole = "BUYER"
	RoleAdmin UserRole = "ADMIN"
)

type Address struct {
	ID        string `json:"id"`
	Label     string `json:"name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"isDefault"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []Address `json:"addresses"`
}

// Clone deep-copies the user, including the address list.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Addresses = append([]Address(nil), u.Addresses...)
	return &c
}

// DefaultAddress returns the address flagged default, else the first one.
func (u *User) DefaultAddress() (Address, bool) {
	if u == nil || len(u.Addresses) == 0 {
		return Address{}, false
	}
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return u.Addresses[0], true
}
