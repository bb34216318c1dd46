package models

// Follow is a directed edge: FollowerID follows FollowedID.
type Follow struct {
	FollowerID int64 `json:"follower_id" db:"follower_id"`
	FollowedID int64 `json:"followed_id" db:"followed_id"`
}

// Like marks MessageID as liked by AccountID.
type Like struct {
	AccountID int64 `json:"account_id" db:"account_id"`
	MessageID int64 `json:"message_id" db:"message_id"`
}
