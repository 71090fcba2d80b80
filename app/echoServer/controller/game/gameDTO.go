package game

type CreateGameReq struct {
	Title     string   `json:"title" validate:"required"`
	Genre     string   `json:"genre" validate:"required"`
	Platforms []string `json:"platforms" validate:"required,min=1"`
	Quantity  int      `json:"quantity" validate:"required,gte=1,lte=100"`
}

type UpdateGameReq struct {
	Title     *string  `json:"title"`
	Genre     *string  `json:"genre"`
	Platforms []string `json:"platforms"`
	Quantity  *int     `json:"quantity" validate:"omitempty,gte=0"`
}
