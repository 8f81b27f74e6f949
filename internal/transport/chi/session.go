package chi

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

const sessionCookie = "fv_session"

// session returns the request's session id, issuing a new cookie when the
// request carries none. The id only keys the preferences record.
func session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// No randomness, no session: preferences just won't persist.
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	return id
}
