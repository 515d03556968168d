package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondData writes a successful envelope
func RespondData(c *gin.Context, field string, value interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Data: map[string]interface{}{field: value},
	})
}

// RespondErrors writes an envelope with null data. Callers pick the status;
// a resolver failure with no data is reported as 500.
func RespondErrors(c *gin.Context, code int, field string, messages ...string) {
	entries := make([]ErrorEntry, 0, len(messages))
	for _, m := range messages {
		entry := ErrorEntry{Message: m}
		if field != "" {
			entry.Path = []interface{}{field}
		}
		entries = append(entries, entry)
	}
	c.JSON(code, Envelope{Data: nil, Errors: entries})
}
