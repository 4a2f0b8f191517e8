// Package scheduling delivers recurring messages to agent workflows on cron
// schedules and provides a context-aware sleep for handler code.
package scheduling
