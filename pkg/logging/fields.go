package logging

import "time"

// Typed field constructors.

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Error logs the message under "error". A nil error logs null, so callers
// need not guard the happy path.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain fields shared across the toolkit's log lines.

func Threat(name string) Field {
	return String("threat", name)
}

func Asset(name string) Field {
	return String("asset", name)
}

func Mission(name string) Field {
	return String("mission", name)
}

func Path(p string) Field {
	return String("path", p)
}
