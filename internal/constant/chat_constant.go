package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"

	// SessionTokenHeader carries the opaque session token issued at login.
	SessionTokenHeader = "X-Session-Token"

	// HistoryLimit is how many previous turns feed the response composer.
	HistoryLimit = 10
)
