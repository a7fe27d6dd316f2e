package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
	loc           = time.UTC
)

// SetOutput changes the destination of JSON log lines. Mostly useful in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetLocation sets the time zone used for the "ts" field.
func SetLocation(l *time.Location) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	loc = l
}

// Location returns the time zone used for the "ts" field.
func Location() *time.Location {
	mu.Lock()
	defer mu.Unlock()
	return loc
}

// JSON writes a single JSON object per line.
// "ts" is always set; "level" defaults to "error" when status is "error", otherwise "info".
func JSON(data map[string]any) {
	mu.Lock()
	defer mu.Unlock()

	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal log entry: %v", err)
		return
	}
	b = append(b, '\n')
	_, _ = out.Write(b)
}

// Info logs msg with extra fields at info level.
func Info(msg string, fields map[string]any) {
	JSON(merge(fields, map[string]any{"level": "info", "msg": msg}))
}

// Error logs msg plus err at error level.
func Error(msg string, err error, fields map[string]any) {
	entry := merge(fields, map[string]any{"level": "error", "msg": msg})
	if err != nil {
		entry["error"] = err.Error()
	}
	JSON(entry)
}

func merge(fields, base map[string]any) map[string]any {
	for k, v := range fields {
		if _, ok := base[k]; !ok {
			base[k] = v
		}
	}
	return base
}
