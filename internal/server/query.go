// ABOUTME: Parses dashboard request parameters from the query string.
// ABOUTME: Malformed values are configuration errors and map to 400.
package server

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/models"
)

func parseOptions(c *gin.Context) (dashboard.Options, error) {
	var opts dashboard.Options

	if v := strings.TrimSpace(c.Query("rows")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, &models.ConfigError{Field: "rows", Reason: "must be an integer"}
		}
		opts.Rows = &n
	}
	if v := strings.TrimSpace(c.Query("seed")); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, &models.ConfigError{Field: "seed", Reason: "must be an unsigned integer"}
		}
		opts.Seed = &seed
	}
	if v := strings.TrimSpace(c.Query("at")); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, &models.ConfigError{Field: "at", Reason: "must be a unix timestamp"}
		}
		opts.At = time.Unix(sec, 0)
	}
	opts.Session = c.Query("session")
	opts.Compare = c.QueryArray("compare")
	return opts, nil
}

func link(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func withParam(q url.Values, key, value string) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Set(key, value)
	return out
}

// chartSlug turns a column name into a URL-safe chart id suffix.
func chartSlug(column string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(column) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
