package dto

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what the service hands the handler. RefreshToken goes into
// the session cookie and never into a response body.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         UserOutput
}

type TokenOutput struct {
	AccessToken string     `json:"accessToken"`
	User        UserOutput `json:"user"`
}
