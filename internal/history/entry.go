package history

import (
	"time"

	"github.com/msto63/argot/foundation/argot"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

// NewEntry describes the outcome of one Engine.Execute call. On success the
// entry shares the invocation ID, so history rows and log lines correlate.
func NewEntry(source Source, sessionID, input string, res *argot.Result, err error) *Entry {
	entry := &Entry{
		Timestamp: time.Now(),
		Source:    source,
		SessionID: sessionID,
		Input:     input,
	}
	if err != nil {
		entry.ErrorCode = argoterrors.CodeOf(err).String()
		entry.Reply = err.Error()
		return entry
	}
	if res != nil {
		entry.ID = res.InvocationID
		entry.Command = res.Command
		entry.Output = res.Output
		entry.Reply = res.Message
	}
	return entry
}
