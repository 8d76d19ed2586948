package middleware

import (
	"net/http"

	"github.com/2beens/bedgemon/pkg"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every incoming request. The secret header is never logged.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if log.IsLevelEnabled(log.TraceLevel) {
				fields := log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"ua":     r.Header.Get("User-Agent"),
				}
				if profile := r.URL.Query().Get("profile"); profile != "" {
					fields["profile"] = profile
				}
				if ip, err := pkg.ReadUserIP(r); err == nil {
					fields["ip"] = ip
				}
				log.WithFields(fields).Trace("request")
			}
			next.ServeHTTP(w, r)
		})
	}
}
