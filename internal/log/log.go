package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "ARNIE_QUOTES_LOG"

// NewLogger builds an apex/log logger writing compact lines to w.
// The ARNIE_QUOTES_LOG env variable takes precedence over level.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}
	parsed, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return &log.Logger{
		Handler: NewTextHandler(w),
		Level:   parsed,
	}, nil
}

// TextHandler formats entries as "<timestamp> <L> <message> key=value ...".
type TextHandler struct {
	mu     sync.Mutex
	writer io.Writer
	now    func() time.Time
}

func NewTextHandler(w io.Writer) *TextHandler {
	return &TextHandler{
		writer: w,
		now:    time.Now,
	}
}

// HandleLog implements the log.Handler interface
func (h *TextHandler) HandleLog(e *log.Entry) error {
	timestamp := h.now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp, level, e.Message)

	names := e.Fields.Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}
