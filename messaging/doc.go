// Package messaging delivers outbound messages to participants through the
// platform messaging API. It follows the same backend / activities / facade
// split as the knowledge and document packages.
package messaging
