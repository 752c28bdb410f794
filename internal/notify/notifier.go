// internal/notify/notifier.go
package notify

import (
	"github.com/sirupsen/logrus"
)

// Level classifies a user-facing notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification is the toast analog: a short user-facing message produced
// by the state layer as a side effect of an operation.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier is the sink the state services push notifications into. The
// services never format HTTP responses themselves; they emit here and
// return typed errors.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the application logger. It is the
// default sink when no client-facing channel is attached.
type LogNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier creates a notifier backed by the given logger
func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify implements Notifier
func (n *LogNotifier) Notify(msg Notification) {
	entry := n.log.WithFields(logrus.Fields{
		"title": msg.Title,
		"kind":  "notification",
	})

	switch msg.Level {
	case LevelError:
		entry.Warn(msg.Message)
	default:
		entry.Info(msg.Message)
	}
}

// Success is a convenience constructor
func Success(title, message string) Notification {
	return Notification{Level: LevelSuccess, Title: title, Message: message}
}

// Info is a convenience constructor
func Info(title, message string) Notification {
	return Notification{Level: LevelInfo, Title: title, Message: message}
}

// Error is a convenience constructor
func Error(title, message string) Notification {
	return Notification{Level: LevelError, Title: title, Message: message}
}
