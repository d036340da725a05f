package runtime

import "fmt"

// logObject provides log.info/warn/error methods for Risor scripts,
// proxied into every evaluation the same way the vex object is. Unlike vex,
// it is never stage-gated and never queues an Intent — it's a direct,
// unbuffered print for a scriptlet author debugging their own script.
type logObject struct {
	prefix string
}

func (l *logObject) Info(msg string) {
	fmt.Printf("[%s] INFO: %s\n", l.prefix, msg)
}

func (l *logObject) Warn(msg string) {
	fmt.Printf("[%s] WARN: %s\n", l.prefix, msg)
}

func (l *logObject) Error(msg string) {
	fmt.Printf("[%s] ERROR: %s\n", l.prefix, msg)
}
