package cmd

import (
	"encoding/json"
	"fmt"

	"sdkswitcher/logging"
)

// Global variables for JSON mode
var (
	jsonOutput bool // Flag for JSON output
	jsonLogs   bool // Flag for JSON logs
)

// GetJsonOutput returns the value of the JSON flag
func GetJsonOutput() bool {
	return jsonOutput
}

// CheckOutput is the JSON shape of the check command
type CheckOutput struct {
	Latest string `json:"latest"`
}

// OutputJSON handles JSON output for all commands
func OutputJSON(data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}
	logging.LogOutput("%s", jsonData)
	return nil
}
