package pkg

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/adminboard/internal/domain"
	"gorm.io/gorm"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
	defaultSort     = "id:desc"
)

// likeSuffix marks a filter key as a substring match instead of equality.
const likeSuffix = "__like"

// reservedParams are query parameters with paging/search meaning; everything
// else in the query string is treated as a column filter.
var reservedParams = map[string]bool{
	"page":         true,
	"page_size":    true,
	"sort":         true,
	"search_field": true,
	"q":            true,
}

// ParsePageRequest reads paging, sorting, search, and filter parameters from
// the request query string, clamping page and page_size into valid ranges.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page := intQuery(c, "page", defaultPage)
	if page < 1 {
		page = defaultPage
	}

	pageSize := intQuery(c, "page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.PageRequest{
		Page:        page,
		PageSize:    pageSize,
		Sort:        c.DefaultQuery("sort", defaultSort),
		SearchField: c.Query("search_field"),
		Search:      c.Query("q"),
		Filter:      filter,
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

// Paginate returns a scope applying LIMIT/OFFSET for the requested page.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((req.Page - 1) * req.PageSize).Limit(req.PageSize)
	}
}

// Sort returns a scope applying ORDER BY for a "field:direction" sort spec.
// Malformed specs and fields outside the allowed list are silently ignored;
// field names never reach the SQL string unless they pass validation.
func Sort(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field, direction, ok := strings.Cut(req.Sort, ":")
		if !ok {
			return db
		}
		field = strings.TrimSpace(field)
		direction = strings.TrimSpace(strings.ToLower(direction))

		if direction != "asc" && direction != "desc" {
			return db
		}
		if !fieldAllowed(field, allowed) {
			return db
		}
		return db.Order(field + " " + direction)
	}
}

// Filter returns a scope turning the request's filter map into WHERE clauses.
// A "field__like" key becomes LIKE '%value%', a plain key becomes equality.
// Keys outside the allowed list are dropped.
func Filter(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range req.Filter {
			if field, ok := strings.CutSuffix(key, likeSuffix); ok {
				if fieldAllowed(field, allowed) {
					db = db.Where(field+" LIKE ?", "%"+value+"%")
				}
				continue
			}
			if fieldAllowed(key, allowed) {
				db = db.Where(key+" = ?", value)
			}
		}
		return db
	}
}

// NewPageResult assembles a PageResult, computing the page count and
// normalizing nil item slices so they encode as [] rather than null.
func NewPageResult[T any](items []T, total int64, req domain.PageRequest) *domain.PageResult[T] {
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	}
	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}

// fieldAllowed reports whether field is a well-formed identifier present in
// the allowed list. The shape check keeps user input out of raw SQL.
func fieldAllowed(field string, allowed []string) bool {
	if !isIdentifier(field) {
		return false
	}
	return slices.Contains(allowed, field)
}

func isIdentifier(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
		case ch == '_':
		default:
			return false
		}
	}
	return true
}
