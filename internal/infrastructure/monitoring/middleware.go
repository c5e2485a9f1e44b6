package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, time.Since(start))
	}
}

// Timer measures the duration of one filesystem operation.
type Timer struct {
	start   time.Time
	metrics *Metrics
	op      string
}

// NewTimer starts a timer for the named operation.
func NewTimer(metrics *Metrics, op string) *Timer {
	return &Timer{start: time.Now(), metrics: metrics, op: op}
}

// Stop records the operation, labeling it ok or error.
func (t *Timer) Stop(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordOp(t.op, status, time.Since(t.start))
}
