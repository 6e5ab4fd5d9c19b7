package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atelier/discography-api/internal/logger"
)

// Trail appends human-readable audit lines to a flat file.  Each call opens
// the file in append mode and closes it again, so lines written by
// concurrent requests interleave whole (O_APPEND) and the file can be
// rotated externally without coordination.
type Trail struct {
	path string
}

// New returns a Trail writing to the given path.
func New(path string) *Trail { return &Trail{path: path} }

// Append writes one timestamped line.  Failures are logged and swallowed;
// an unwritable audit file must never fail the request that triggered it.
func (t *Trail) Append(line string) {
	if t == nil || t.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		logger.Log.Warnw("audit dir create failed", "path", t.path, "err", err)
		return
	}
	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Log.Warnw("audit open failed", "path", t.path, "err", err)
		return
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s - %s\n", time.Now().Format("2006-01-02 15:04:05"), line); err != nil {
		logger.Log.Warnw("audit write failed", "path", t.path, "err", err)
	}
}

// IdentityResolved records the outcome of resolving the caller behind a
// token, including requests where no identity could be established.
func (t *Trail) IdentityResolved(userID uint64, ok bool, ip string) {
	who := "no user id"
	if ok {
		who = fmt.Sprintf("%d", userID)
	}
	t.Append(fmt.Sprintf("User ID: %s - IP: %s", who, ip))
}

// OrderCreated records a successfully placed order.
func (t *Trail) OrderCreated(orderID, userID uint64, itemCount int, total float64) {
	t.Append(fmt.Sprintf("Order #%d created by User #%d (%d items, total %.2f)", orderID, userID, itemCount, total))
}

// StatusUpdated records an admin-driven order status change.
func (t *Trail) StatusUpdated(orderID uint64, status string, adminID uint64) {
	t.Append(fmt.Sprintf("Order #%d status updated to %s by admin User #%d", orderID, status, adminID))
}
