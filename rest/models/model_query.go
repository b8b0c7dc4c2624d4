package models

// ListQuery holds the ordering and paging parameters of a list request,
// e.g. "?orderBy=date&direction=desc&pageSize=20&page=2"
type ListQuery struct {
	OrderBy   string `mapstructure:"orderBy"`
	Direction string `mapstructure:"direction" validate:"omitempty,oneof=asc desc ascending descending"`
	PageSize  int    `mapstructure:"pageSize" validate:"omitempty,min=1"`
	Page      int    `mapstructure:"page" validate:"omitempty,min=1"`
}

// ListQueryKeys are the query string keys reserved by ListQuery
var ListQueryKeys = []string{"orderBy", "direction", "pageSize", "page"}
