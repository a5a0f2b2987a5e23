package commands

import (
	"strings"

	"github.com/goliatone/go-schema-store/internal/logging"
	"github.com/goliatone/go-schema-store/pkg/interfaces"
)

const commandModuleRoot = "schemastore.commands"

// CommandLogger returns a module-scoped logger for command handlers,
// enriching it with consistent structured fields so command executions can
// be correlated across entries.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
