package models

// Project membership order is whatever the backend returned; the list is
// display-significant and kept verbatim, duplicates included.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	OwnerID     string   `json:"ownerId"`
	Members     []string `json:"members"`
}

type ProjectCreate struct {
	Name        string
	Description string
	MemberIDs   []string
}
