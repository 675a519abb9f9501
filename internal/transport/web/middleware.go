package web

import (
	"net/http"
	"strings"
)

// MethodOverride rewrites POST requests carrying a _method form field into
// the verb the form could not express. Browsers only submit GET and POST, so
// the update and delete forms tunnel PUT and DELETE through this field.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err == nil {
				switch strings.ToUpper(r.PostFormValue("_method")) {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
