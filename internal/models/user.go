package models

// User is the client-side view of an account. Instances are built by the
// gateway mappers from backend payloads; the only mutation path is an
// explicit settings update.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
}

// UserSettings carries the fields a user can change about themselves.
type UserSettings struct {
	Name   *string
	Avatar *string
	Bio    *string
}
