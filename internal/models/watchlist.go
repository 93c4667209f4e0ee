package models

// WatchlistEntry joins an investor to a security they intend to purchase
// later. Entries whose security is no longer listed are filtered at read
// time rather than eagerly deleted.
type WatchlistEntry struct {
	Base
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:uq_watchlist_user_security" json:"user_id"`
	SecurityID string `gorm:"type:uuid;not null;uniqueIndex:uq_watchlist_user_security" json:"security_id"`

	Security *Security `gorm:"foreignKey:SecurityID" json:"security,omitempty"`
}
