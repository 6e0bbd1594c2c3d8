package repositories

import "time"

// ViewerIdentity names who viewed a product: the user ID when signed in,
// else the caller-supplied session token, else the anonymous bucket.
type ViewerIdentity struct {
	UserID    string
	SessionID string
}

// EngagementRepository defines the interface for view and like data access.
//
// RecordView inserts a view event and increments the product's views counter
// unless the same identity already viewed the same product within the window;
// it reports whether the view was counted. ToggleLike inserts or deletes the
// (user, product) like row and moves the product's likes counter in lockstep,
// floored at zero, returning the new liked state.
type EngagementRepository interface {
	RecordView(productID string, identity ViewerIdentity, window time.Duration) (bool, error)
	ToggleLike(productID, userID string) (bool, error)
	IsLiked(productID, userID string) (bool, error)
	CountViews() (int64, error)
	CountLikes() (int64, error)
}
