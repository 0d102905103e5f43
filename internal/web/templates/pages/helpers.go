// Package pages holds the PowerConnect templ components. Edit the .templ
// files and run `templ generate`; the _templ.go files are generated.
package pages

import (
	"net/url"
	"strconv"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/models"
	"github.com/good-yellow-bee/powerconnect/internal/notifications"
	"github.com/good-yellow-bee/powerconnect/internal/toast"
	"github.com/good-yellow-bee/powerconnect/internal/uistate"
)

// NavItem is one entry in the top navigation.
type NavItem struct {
	Path string
	Name string
}

// NavItems are the four application routes.
var NavItems = []NavItem{
	{Path: "/", Name: "Home"},
	{Path: "/dashboard", Name: "Dashboard"},
	{Path: "/notifications", Name: "Notifications"},
	{Path: "/settings", Name: "Settings"},
}

// Chrome is the per-request data every page layout needs.
type Chrome struct {
	Title     string
	Path      string
	CSPNonce  string
	CSRFToken string
	Toasts    []toast.Toast
}

// DashboardPage is everything the dashboard renders.
type DashboardPage struct {
	Outages   []*models.Outage
	Summary   models.OutageSummary
	Expanded  uistate.Set
	Selected  *models.Outage
	MapWidth  int
	MapHeight int
	CSRFToken string
}

// NotificationsPage is the notification history view.
type NotificationsPage struct {
	Items     []*models.Notification
	Total     int
	Query     notifications.Query
	Expanded  uistate.Set
	CSRFToken string
}

// SettingsPage is the preferences view.
type SettingsPage struct {
	Notification uistate.Toggles
	User         uistate.Toggles
	CSRFToken    string
}

func (p SettingsPage) toggles(g models.SettingGroup) uistate.Toggles {
	if g == models.GroupUser {
		return p.User
	}
	return p.Notification
}

type feature struct {
	Title       string
	Description string
}

var features = []feature{
	{"Real-time Outage Detection", "Instantly detect power failures through connected feeder and TC center devices."},
	{"Multi-channel Notifications", "Send SMS, email, and push notifications to affected consumers automatically."},
	{"Restoration Time Updates", "Keep consumers informed with accurate power restoration timelines."},
}

type option struct {
	Value string
	Label string
}

var statusOptions = []option{
	{notifications.StatusAll, "All Statuses"},
	{string(models.StatusOnline), "Online"},
	{string(models.StatusOutage), "Outage"},
	{string(models.StatusMaintenance), "Maintenance"},
	{string(models.StatusWarning), "Warning"},
}

var sortOptions = []option{
	{notifications.SortTimestamp, "Time"},
	{notifications.SortPriority, "Priority"},
}

type settingSection struct {
	Title string
	Intro string
}

var settingSections = []settingSection{
	{models.SectionChannels, "Configure how notifications are delivered to consumers."},
	{models.SectionAlertTypes, "Choose which events trigger a notification."},
	{models.SectionSystem, "General behaviour of the notification system."},
}

// settings returns the section's preferences in display order.
func (s settingSection) settings() []models.Setting {
	var out []models.Setting
	for _, def := range models.SettingDefinitions {
		if def.Section == s.Title {
			out = append(out, def)
		}
	}
	return out
}

// NotificationsURL is the list URL that reproduces q.
func NotificationsURL(q notifications.Query) string {
	if enc := q.Values().Encode(); enc != "" {
		return "/notifications?" + enc
	}
	return "/notifications"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// thousands formats n with comma separators.
func thousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func formatClock(t time.Time) string {
	return t.Format("15:04")
}

func formatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}

func isoTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

func navClass(path, active string) string {
	if path == active {
		return "nav-link active"
	}
	return "nav-link"
}

func dotClass(s models.Status) string {
	if s != models.StatusOnline {
		return "dot pulse"
	}
	return "dot"
}

func expandLabel(expanded bool) string {
	if expanded {
		return "Show Less"
	}
	return "Show More"
}

func messageText(n *models.Notification, expanded bool) string {
	if expanded {
		return n.Message
	}
	return n.Preview()
}

func sortArrow(order string) string {
	if order == notifications.OrderAsc {
		return "↑"
	}
	return "↓"
}

func switchClass(on bool) string {
	if on {
		return "switch switch-on"
	}
	return "switch switch-off"
}

func switchLabel(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

func outageAction(id, action string) string {
	return "/dashboard/outages/" + url.PathEscape(id) + "/" + action
}

func notificationAction(id string) string {
	return "/notifications/" + url.PathEscape(id) + "/expand"
}

func settingAction(s models.Setting) string {
	return "/settings/toggle/" + url.PathEscape(string(s.Group)) + "/" + url.PathEscape(s.Key)
}

func settingRowID(s models.Setting) string {
	return "setting-" + string(s.Group) + "-" + s.Key
}

func mapSrc(width, height int) string {
	return "/dashboard/map.svg?w=" + strconv.Itoa(width) + "&h=" + strconv.Itoa(height)
}
