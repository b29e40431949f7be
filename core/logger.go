package core

// Logger is any service that can report application events.
// args may hold an error, a map[string]interface{} of extra data or a RequestInfo.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// RequestInfo identifies the HTTP request an event happened in.
type RequestInfo struct {
	ID     string
	Method string
	Path   string
	IP     string
}
