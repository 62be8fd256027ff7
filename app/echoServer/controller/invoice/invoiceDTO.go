package invoice

type ListReq struct {
	Query string `query:"query"`
	Page  int    `query:"page" validate:"omitempty,gte=1"`
}
