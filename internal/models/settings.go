package models

// SettingGroup identifies one of the independently toggled settings maps.
type SettingGroup string

const (
	GroupNotification SettingGroup = "notification"
	GroupUser         SettingGroup = "user"
)

// Setting describes a single boolean preference.
type Setting struct {
	Group       SettingGroup
	Key         string
	Title       string
	Description string
	Section     string
	Default     bool
}

// Settings sections as rendered on the settings page.
const (
	SectionChannels   = "Notification Channels"
	SectionAlertTypes = "Alert Types"
	SectionSystem     = "System Settings"
)

// SettingDefinitions lists every preference in display order.
var SettingDefinitions = []Setting{
	{GroupNotification, "smsEnabled", "SMS Notifications", "Send text messages for power outage alerts", SectionChannels, true},
	{GroupNotification, "emailEnabled", "Email Notifications", "Send email alerts for outages and updates", SectionChannels, true},
	{GroupNotification, "pushEnabled", "Push Notifications", "Send mobile app push notifications", SectionChannels, false},
	{GroupNotification, "outageAlerts", "Power Outage Alerts", "Immediate notification when power outage is detected", SectionAlertTypes, true},
	{GroupNotification, "maintenanceAlerts", "Maintenance Notifications", "Advance notice for scheduled maintenance", SectionAlertTypes, true},
	{GroupNotification, "restorationUpdates", "Restoration Updates", "Updates on estimated restoration times and completion", SectionAlertTypes, true},
	{GroupUser, "autoMapConsumers", "Auto-map Consumers", "Automatically map consumers to feeders and TC centers", SectionSystem, true},
	{GroupUser, "sendTestNotifications", "Send Test Notifications", "Allow sending test notifications to verify system", SectionSystem, false},
	{GroupUser, "storeHistorical", "Store Historical Data", "Keep historical outage and notification data", SectionSystem, true},
	{GroupUser, "detailedReporting", "Detailed Reporting", "Enable detailed analytics and reporting", SectionSystem, true},
}

// DefaultSettings returns the default key→value map for a group.
func DefaultSettings(group SettingGroup) map[string]bool {
	m := make(map[string]bool)
	for _, s := range SettingDefinitions {
		if s.Group == group {
			m[s.Key] = s.Default
		}
	}
	return m
}

// LookupSetting finds a definition by group and key.
func LookupSetting(group SettingGroup, key string) (Setting, bool) {
	for _, s := range SettingDefinitions {
		if s.Group == group && s.Key == key {
			return s, true
		}
	}
	return Setting{}, false
}
