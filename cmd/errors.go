package cmd

import (
	"errors"
	"fmt"
	"os"

	switchererrors "sdkswitcher/errors"
	"sdkswitcher/logging"
)

// exit is replaced in tests
var exit = os.Exit

// ErrorOutput is the JSON shape of a failed command
type ErrorOutput struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ExitWithError reports err and terminates the process with status 1
func ExitWithError(err error) {
	logging.LogDebug("Command failed: %v", err)

	if GetJsonOutput() {
		_ = OutputJSON(ErrorOutput{
			Error:   errorMessage(err),
			Code:    string(switchererrors.GetErrorCode(err)),
			Details: switchererrors.GetErrorDetails(err),
		})
	}
	fmt.Fprintf(os.Stderr, "❌ %s\n", errorMessage(err))

	logging.Close()
	exit(1)
}

// errorMessage renders err without its error code prefix
func errorMessage(err error) string {
	var switcherErr *switchererrors.SwitcherError
	if !errors.As(err, &switcherErr) {
		return err.Error()
	}
	if switcherErr.Wrapped != nil {
		return fmt.Sprintf("%s: %s", switcherErr.Message, errorMessage(switcherErr.Wrapped))
	}
	return switcherErr.Message
}
