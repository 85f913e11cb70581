package models

// User is the per-identity document in the users table, keyed by the
// external identity id. It is created lazily on first successful sign-in
// and never re-created afterwards.
//
// FavoriteStationIDs is persisted as a DynamoDB string set, so uniqueness
// is enforced by the store itself; the attribute is omitted entirely while
// the set is empty (DynamoDB rejects empty sets).
type User struct {
	UID                string   `json:"uid" dynamodbav:"uid"`
	Email              string   `json:"email" dynamodbav:"email"`
	DisplayName        string   `json:"displayName" dynamodbav:"displayName"`
	CreatedAt          int64    `json:"createdAt" dynamodbav:"createdAt"`
	FavoriteStationIDs []string `json:"favoriteStationIds,omitempty" dynamodbav:"favoriteStationIds,stringset,omitempty"`
}
