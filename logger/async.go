package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"gorm.io/gorm"

	logModel "finoffice/models/log"
	"finoffice/types"
)

// AsyncLogger persists request logs off the hot path. Controllers hand entries
// to Log and a single ProcessLog goroutine drains the channel into the logs table.
type AsyncLogger struct {
	db      *gorm.DB
	entries chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		entries: make(chan types.LogEntry, 256),
	}
}

// Log enqueues an entry. If the buffer is full the entry is dropped with a
// warning rather than blocking the request.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case l.entries <- entry:
	default:
		Warning("Async log buffer full, dropping entry for " + entry.URL)
	}
}

// LogRequest captures the current request into an entry and enqueues it.
// Controllers call it on mutating endpoints once the outcome is known.
func (l *AsyncLogger) LogRequest(c *fiber.Ctx, statusCode int, userID *uint) {
	// Method and OriginalURL are backed by fasthttp's reused request buffer;
	// copy them so the entry stays valid until the async drain persists it.
	l.Log(types.LogEntry{
		Method:          fiberutils.CopyString(c.Method()),
		URL:             fiberutils.CopyString(c.OriginalURL()),
		RequestBody:     string(c.Body()),
		RequestHeaders:  string(c.Request().Header.Header()),
		ResponseHeaders: string(c.Response().Header.Header()),
		StatusCode:      statusCode,
		UserID:          userID,
		CreatedAt:       time.Now(),
	})
}

// ProcessLog drains the entry channel. Run it in its own goroutine.
func (l *AsyncLogger) ProcessLog() {
	for entry := range l.entries {
		row := logModel.Log{
			Method:          entry.Method,
			URL:             entry.URL,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			UserID:          entry.UserID,
			CreatedAt:       entry.CreatedAt,
		}
		if err := l.db.Create(&row).Error; err != nil {
			Error("Failed to persist request log", err)
		}
	}
}

// Close stops the processing goroutine once the channel drains.
func (l *AsyncLogger) Close() {
	close(l.entries)
}
