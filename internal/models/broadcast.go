package models

type BroadcastTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

type BroadcastRecipient struct {
	UserID   string
	Username string
}

type BroadcastResult struct {
	Success []BroadcastRecipient
	Skipped []BroadcastRecipient // direct messages closed
	Failed  []BroadcastRecipient
}

type BroadcastPermission string

const (
	BroadcastAdminsOnly BroadcastPermission = "admins-only"
	BroadcastNobody     BroadcastPermission = "nobody"
	BroadcastAllowList  BroadcastPermission = "allow-list"
)

// ReloadSummary describes the configuration that a reload made active.
// Secrets are reported only as present or absent.
type ReloadSummary struct {
	TwitchClientIDSet     bool                `json:"twitch_client_id_set"`
	TwitchClientSecretSet bool                `json:"twitch_client_secret_set"`
	ChannelID             string              `json:"channel_id"`
	WatchedStreamers      int                 `json:"watched_streamers"`
	CheckIntervalSeconds  int                 `json:"check_interval_seconds"`
	NotificationRoleID    string              `json:"notification_role_id"`
	BroadcastPermission   BroadcastPermission `json:"broadcast_permission"`
	BroadcastAllowedUsers int                 `json:"broadcast_allowed_users"`
	NotificationsEnabled  bool                `json:"notifications_enabled"`
}
