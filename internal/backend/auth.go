package backend

import "context"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. Unauthenticated by
// definition, so no TokenSource.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out authResponse
	if err := c.Post(ctx, "/auth/login", credentials{Email: email, Password: password}, &out, nil); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Register(ctx context.Context, email, username, password string) (string, error) {
	var out authResponse
	if err := c.Post(ctx, "/auth/register", credentials{Email: email, Password: password, Username: username}, &out, nil); err != nil {
		return "", err
	}
	return out.Token, nil
}
