package request

type PaginatedRequest struct {
	Page    int `json:"page" validate:"omitempty,gte=1"`
	PerPage int `json:"per_page" validate:"omitempty,gte=1,lte=100"`
}

func (r *PaginatedRequest) Limit() int {
	if r.PerPage < 1 {
		return 10
	}
	return r.PerPage
}

func (r *PaginatedRequest) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.Limit()
}
