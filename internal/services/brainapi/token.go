package brainapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiryBuffer guards against the race between the local expiry
// check and server-side validation: a token expiring within the buffer is
// treated as already expired.
const tokenExpiryBuffer = 30 * time.Second

var unverifiedParser = jwt.NewParser()

// tokenExpired reports whether the JWT is expired or undecodable. The
// signature is deliberately not verified: the token is the app's own and
// only its exp claim matters here.
func (c *Client) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return c.now().Add(tokenExpiryBuffer).After(exp.Time)
}
