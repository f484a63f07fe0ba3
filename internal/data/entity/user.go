package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is the account a booking is made for.
type User struct {
	Base         `bson:",inline"`
	Name         string   `bson:"name" json:"name"`
	Email        string   `bson:"email" json:"email"`
	Phone        string   `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string   `bson:"password_hash" json:"password_hash"`
	Role         UserRole `bson:"role" json:"role"`
}
