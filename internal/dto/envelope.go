package dto

import "github.com/alimarchal/maharat-sub001/internal/query"

// NoRecordsMessage accompanies every empty list page.
const NoRecordsMessage = "No records found"

// DataResponse wraps a single resource or an arbitrary payload.
type DataResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// ListMeta describes the page a list response carries.
type ListMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// ListResponse is the paginated collection envelope. Message is set only when
// the page is empty.
type ListResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
	Meta    ListMeta    `json:"meta"`
}

// NewListResponse converts a query page into the wire envelope.
func NewListResponse[T any](p query.Page[T]) ListResponse {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	resp := ListResponse{
		Data: items,
		Meta: ListMeta{
			CurrentPage: p.Number,
			PerPage:     p.Size,
			Total:       p.Total,
			LastPage:    p.LastPage(),
		},
	}
	if len(items) == 0 {
		resp.Message = NoRecordsMessage
	}
	return resp
}

// Creator is a validated create request that builds a new model.
type Creator[T any] interface {
	ToModel() *T
}

// Updater is a validated partial update applied onto an existing model.
type Updater[T any] interface {
	Apply(*T)
}
