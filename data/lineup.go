package data

// LineUps holds one row per historical roster of a group artist. A group may
// own any number of line-ups; a solo artist owns none.
type LineUp struct {
	ID       int64
	ArtistID int64
}

// Memberships represent "this artist, optionally as it existed in one of its
// own line-ups, held a role in this line-up of this group."
//
// MemberLineUpID is nil when the member had no applicable line-up of its own
// at the time (the dumps encode that with a -1 index). When set, it must be a
// line-up owned by MemberArtistID.
type Membership struct {
	ID             int64
	MemberArtistID int64
	MemberLineUpID *int64
	Role           Role
	GroupArtistID  int64
	GroupLineUpID  int64
}
