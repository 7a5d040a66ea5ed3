package request

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PaginatedRequest struct {
	PageNumber int `json:"page_number" validate:"min=1"`
	PageSize   int `json:"page_size" validate:"min=1,max=100"`
}

// Normalize applies the defaults and clamps the page size
func (p *PaginatedRequest) Normalize() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p PaginatedRequest) Offset() int {
	if p.PageNumber < 1 {
		return 0
	}
	return (p.PageNumber - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PageSize < 1 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}
