package logger

import "log"

// Logger is what the services write their diagnostics to.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Std writes through the standard logger.
type Std struct{}

func (Std) Infof(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

func (Std) Errorf(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}

// OrStd returns l, or the standard logger when l is nil.
func OrStd(l Logger) Logger {
	if l == nil {
		return Std{}
	}
	return l
}
