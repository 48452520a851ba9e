package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type ctxKey int

const clientIDKey ctxKey = iota

// ClientIDCookie identifies the shopping client. Carts and checkout
// staging belong to this ID, not to a server-side account.
const ClientIDCookie = "sid"

// ClientSession assigns each visitor a stable client ID cookie on first
// touch and puts it on the request context.
func ClientSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var clientID string
		if c, err := r.Cookie(ClientIDCookie); err == nil && c.Value != "" {
			clientID = c.Value
		} else {
			clientID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientIDCookie,
				Value:    clientID,
				Path:     "/",
				MaxAge:   int((90 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(clientIDKey).(string); ok {
		return id
	}
	return ""
}
