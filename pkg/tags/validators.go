package tags

type CreateTagPayload struct {
	Name  string  `json:"name" validate:"required,max=300"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

type UpdateTagPayload struct {
	Name  string  `json:"name" validate:"required,max=300"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=32"`
}
