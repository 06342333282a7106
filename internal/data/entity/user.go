package entity

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleStaff    UserRole = "staff"
	UserRoleCustomer UserRole = "customer"
)

type User struct {
	Base
	Name      string   `db:"name"`
	ContactNo string   `db:"contact_no"`
	Address   *string  `db:"address"`
	Role      UserRole `db:"role"`
}
