// Package adminauth protects the admin panel: a route gate that checks
// for the signed session cookie, and the login flow that issues it.
package adminauth

import "net/http"

// SessionCookie is the cookie the gate looks for. Its content is not
// inspected here; validity is the session manager's business.
const SessionCookie = "session"

// Gate redirects requests that carry no session cookie to the login
// page. The login path itself always passes, so an unauthenticated
// visit to it cannot loop. Two states, nothing more: with cookie the
// request proceeds, without it the client is sent to log in.
func Gate(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == loginPath {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := r.Cookie(SessionCookie); err != nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
