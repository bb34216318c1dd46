package models

// Activity event types published after successful mutations.
const (
	EventAccountCreated = "account.created"
	EventAccountUpdated = "account.updated"
	EventAccountDeleted = "account.deleted"
	EventMessagePosted  = "message.posted"
	EventMessageDeleted = "message.deleted"
	EventFollowed       = "account.followed"
	EventUnfollowed     = "account.unfollowed"
	EventLiked          = "message.liked"
	EventUnliked        = "message.unliked"
)

// Event represents an activity event, including the acting account, the target and the time it happened.
type Event struct {
	EventID   string `json:"event_id"`   // EventID is a unique identifier for the event.
	Type      string `json:"type"`       // Type is one of the Event* constants.
	AccountID int64  `json:"account_id"` // AccountID is the account that performed the action.
	TargetID  int64  `json:"target_id"`  // TargetID is the followed account or the message, zero when not applicable.
	Timestamp int64  `json:"timestamp"`  // Timestamp is the Unix timestamp (in seconds) of the action.
}
