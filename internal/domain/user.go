package domain

// User aggregates the canonical user document data. FriendIDs is directional:
// B appearing in A's list does not imply A appears in B's. The list may carry
// duplicates or self-references as recorded by the store.
type User struct {
	ID        string   `bson:"_id" json:"userId"`
	FriendIDs []string `bson:"friendIds" json:"friendIds"`
}
