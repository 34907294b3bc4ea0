package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseTaskID extracts a task ID from the first positional argument or the --id flag
func (p *FlagParser) ParseTaskID(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	if p.cmd.Flags().Lookup("id") != nil {
		if id, _ := p.cmd.Flags().GetString("id"); strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id), nil
		}
	}
	return "", fmt.Errorf("task id is required")
}

// ParseStatus extracts a column from a flag. An unset optional flag yields "".
func (p *FlagParser) ParseStatus(flagName string, required bool) (models.Status, error) {
	raw, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if strings.TrimSpace(raw) == "" {
		if required {
			return "", fmt.Errorf("%s is required", flagName)
		}
		return "", nil
	}
	return cli.ParseStatus(raw)
}

// ParsePriority extracts a priority flag
func (p *FlagParser) ParsePriority(flagName string) (models.Priority, error) {
	raw, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return cli.ParsePriority(raw)
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", flagName)
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	return p.cmd.Flags().GetString(flagName)
}

// ParseStringChanged returns a pointer to the flag's value if it was set
// explicitly, nil otherwise
func (p *FlagParser) ParseStringChanged(flagName string) (*string, error) {
	if !p.cmd.Flags().Changed(flagName) {
		return nil, nil
	}
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return &value, nil
}

// ParseIntOptional extracts an optional int flag
func (p *FlagParser) ParseIntOptional(flagName string) (int, error) {
	return p.cmd.Flags().GetInt(flagName)
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	return p.cmd.Flags().GetBool(flagName)
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
