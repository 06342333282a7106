package request

type CreateUserRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	ContactNo string  `json:"contact_no" validate:"required,max=20"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=200"`
	Role      string  `json:"role" validate:"omitempty,oneof=admin staff customer"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	ContactNo *string `json:"contact_no,omitempty" validate:"omitempty,max=20"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=200"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=admin staff customer"`
}
