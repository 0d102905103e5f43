// Package notifications derives the filtered and sorted notification view.
package notifications

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/good-yellow-bee/powerconnect/internal/models"
)

// Sort keys.
const (
	SortTimestamp = "timestamp"
	SortPriority  = "priority"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Query selects and orders notifications.
type Query struct {
	Search string `json:"q" validate:"max=200"`
	Status string `json:"status" validate:"omitempty,oneof=all online outage maintenance warning"`
	SortBy string `json:"sort" validate:"omitempty,oneof=timestamp priority"`
	Order  string `json:"order" validate:"omitempty,oneof=asc desc"`
}

// DefaultQuery is the initial view: everything, newest first.
func DefaultQuery() Query {
	return Query{Status: StatusAll, SortBy: SortTimestamp, Order: OrderDesc}
}

var validate = validator.New()

// ParseQuery reads q, status, sort and order from URL values.
// Missing values fall back to DefaultQuery.
func ParseQuery(values url.Values) (Query, error) {
	q := DefaultQuery()
	q.Search = values.Get("q")
	if v := values.Get("status"); v != "" {
		q.Status = v
	}
	if v := values.Get("sort"); v != "" {
		q.SortBy = v
	}
	if v := values.Get("order"); v != "" {
		q.Order = v
	}

	if err := validate.Struct(q); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return DefaultQuery(), fmt.Errorf("invalid %s: failed on '%s' validation", strings.ToLower(fe.Field()), fe.Tag())
		}
		return DefaultQuery(), fmt.Errorf("invalid query: %w", err)
	}
	return q, nil
}

// Values encodes the query back to URL values, omitting defaults.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Status != "" && q.Status != StatusAll {
		v.Set("status", q.Status)
	}
	if q.SortBy != "" && q.SortBy != SortTimestamp {
		v.Set("sort", q.SortBy)
	}
	if q.Order != "" && q.Order != OrderDesc {
		v.Set("order", q.Order)
	}
	return v
}

// ToggleOrder returns a copy with the sort order flipped.
func (q Query) ToggleOrder() Query {
	if q.Order == OrderAsc {
		q.Order = OrderDesc
	} else {
		q.Order = OrderAsc
	}
	return q
}

// Matches reports whether n passes the search and status filter.
func (q Query) Matches(n *models.Notification) bool {
	term := strings.ToLower(q.Search)
	matchesSearch := strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Message), term) ||
		strings.Contains(strings.ToLower(n.Area), term)

	matchesStatus := q.Status == "" || q.Status == StatusAll || string(n.Status) == q.Status

	return matchesSearch && matchesStatus
}

// Apply returns a new slice with the matching notifications in query order.
// Equal sort keys keep their source order.
func Apply(list []*models.Notification, q Query) []*models.Notification {
	out := make([]*models.Notification, 0, len(list))
	for _, n := range list {
		if q.Matches(n) {
			out = append(out, n)
		}
	}

	desc := q.Order != OrderAsc
	var less func(a, b *models.Notification) bool
	if q.SortBy == SortPriority {
		less = func(a, b *models.Notification) bool {
			return a.Priority.Rank() < b.Priority.Rank()
		}
	} else {
		less = func(a, b *models.Notification) bool {
			return a.Timestamp.Before(b.Timestamp)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
