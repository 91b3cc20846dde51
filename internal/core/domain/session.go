package domain

// Session is the durable identity record for one user: the backend auth
// token plus the last phone the user authenticated with. The phone is kept
// so re-login prompts can be skipped after a token expiry.
type Session struct {
	Token string `json:"token"`
	Phone string `json:"phone,omitempty"`
}
