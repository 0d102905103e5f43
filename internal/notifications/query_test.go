package notifications

import (
	"net/url"
	"testing"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/models"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sample() []*models.Notification {
	return []*models.Notification{
		{ID: "NOTIF-9241", Title: "Power Outage Detected", Message: "We've detected a power outage in your area.", Timestamp: ts("2023-08-18T15:32:00"), Status: models.StatusOutage, SentTo: 1245, Area: "Central District", Priority: models.PriorityHigh},
		{ID: "NOTIF-9242", Title: "Restoration Time Update", Message: "We're making good progress on repairs.", Timestamp: ts("2023-08-18T16:45:00"), Status: models.StatusOutage, SentTo: 1245, Area: "Central District", Priority: models.PriorityMedium},
		{ID: "NOTIF-9243", Title: "Scheduled Maintenance Notification", Message: "There will be a scheduled maintenance.", Timestamp: ts("2023-08-15T10:00:00"), Status: models.StatusMaintenance, SentTo: 897, Area: "West Suburb", Priority: models.PriorityMedium},
		{ID: "NOTIF-9244", Title: "Power Restored", Message: "Power has been successfully restored to your area.", Timestamp: ts("2023-08-18T19:15:00"), Status: models.StatusOnline, SentTo: 1245, Area: "Central District", Priority: models.PriorityMedium},
		{ID: "NOTIF-9245", Title: "Power Outage - Equipment Failure", Message: "A power outage has been detected in the Industrial Complex.", Timestamp: ts("2023-08-18T16:20:00"), Status: models.StatusOutage, SentTo: 432, Area: "North Zone", Priority: models.PriorityHigh},
		{ID: "NOTIF-9246", Title: "Low voltage notice", Message: "Minor fluctuation.", Timestamp: ts("2023-08-17T08:00:00"), Status: models.StatusWarning, SentTo: 10, Area: "East Side", Priority: models.PriorityLow},
	}
}

func ids(list []*models.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_SearchAndStatus(t *testing.T) {
	q := Query{Search: "central", Status: "outage", SortBy: SortTimestamp, Order: OrderAsc}
	got := ids(Apply(sample(), q))
	want := []string{"NOTIF-9241", "NOTIF-9242"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApply_CaseInsensitiveOverAllFields(t *testing.T) {
	tests := []struct {
		search string
		want   []string
	}{
		{"RESTORED", []string{"NOTIF-9244"}},
		{"industrial complex", []string{"NOTIF-9245"}},
		{"west", []string{"NOTIF-9243"}},
		{"", []string{"NOTIF-9244", "NOTIF-9242", "NOTIF-9245", "NOTIF-9241", "NOTIF-9246", "NOTIF-9243"}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			q := DefaultQuery()
			q.Search = tt.search
			got := ids(Apply(sample(), q))
			if !equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_PriorityDescending(t *testing.T) {
	q := Query{Status: StatusAll, SortBy: SortPriority, Order: OrderDesc}
	got := Apply(sample(), q)

	last := 4
	for _, n := range got {
		r := n.Priority.Rank()
		if r > last {
			t.Fatalf("priority order broken at %s: %v", n.ID, ids(got))
		}
		last = r
	}

	// Ties keep source order.
	want := []string{"NOTIF-9241", "NOTIF-9245", "NOTIF-9242", "NOTIF-9243", "NOTIF-9244", "NOTIF-9246"}
	if !equal(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestApply_PriorityAscending(t *testing.T) {
	q := Query{Status: StatusAll, SortBy: SortPriority, Order: OrderAsc}
	got := Apply(sample(), q)
	if got[0].Priority != models.PriorityLow {
		t.Errorf("first = %s, want low", got[0].Priority)
	}
	if got[len(got)-1].Priority != models.PriorityHigh {
		t.Errorf("last = %s, want high", got[len(got)-1].Priority)
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	list := sample()
	before := ids(list)
	Apply(list, Query{SortBy: SortPriority, Order: OrderAsc})
	if !equal(ids(list), before) {
		t.Error("Apply reordered its input")
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != DefaultQuery() {
		t.Errorf("empty values = %+v, want default", q)
	}

	q, err = ParseQuery(url.Values{"q": {"north"}, "status": {"outage"}, "sort": {"priority"}, "order": {"asc"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Search != "north" || q.Status != "outage" || q.SortBy != SortPriority || q.Order != OrderAsc {
		t.Errorf("parsed = %+v", q)
	}

	bad := []url.Values{
		{"status": {"offline"}},
		{"sort": {"area"}},
		{"order": {"up"}},
	}
	for _, v := range bad {
		if _, err := ParseQuery(v); err == nil {
			t.Errorf("ParseQuery(%v) expected error", v)
		}
	}
}

func TestQuery_ValuesRoundTrip(t *testing.T) {
	q := Query{Search: "zone", Status: "warning", SortBy: SortPriority, Order: OrderAsc}
	back, err := ParseQuery(q.Values())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != q {
		t.Errorf("round trip = %+v, want %+v", back, q)
	}
	if len(DefaultQuery().Values()) != 0 {
		t.Error("default query should encode to no values")
	}
}

func TestQuery_ToggleOrder(t *testing.T) {
	q := DefaultQuery()
	if q.ToggleOrder().Order != OrderAsc {
		t.Error("desc should toggle to asc")
	}
	if q.ToggleOrder().ToggleOrder().Order != OrderDesc {
		t.Error("double toggle should restore order")
	}
}
