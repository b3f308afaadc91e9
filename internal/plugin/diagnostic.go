package plugin

import (
	"fmt"

	"github.com/dshills/addonkit/internal/app"
)

const (
	// SeverityWarning indicates something was skipped but loading went on.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a module or manifest failed.
	SeverityError Severity = "error"
)

// Diagnostic codes.
const (
	CodeImportFailed    = "import_failed"
	CodeManifestFailed  = "manifest_failed"
	CodeUnreadableDir   = "unreadable_directory"
	CodeInvalidFileName = "invalid_file_name"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic is a non-fatal problem found while loading an add-on. They
	// are returned to callers rather than printed, so the CLI and the host
	// decide how to render them.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code is a machine-readable identifier (e.g. "import_failed").
		Code string
		// Module is the module identifier involved, if any.
		Module string
		// Path is the file or directory involved, if any.
		Path string
		// Message is the human-readable description.
		Message string
		// Cause is the underlying error.
		Cause error
	}
)

// Error implements error so a diagnostic can be joined or wrapped.
func (d Diagnostic) Error() string {
	return d.Message
}

// Unwrap returns the cause.
func (d Diagnostic) Unwrap() error {
	return d.Cause
}

func importDiagnostic(id, path string, cause error) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     CodeImportFailed,
		Module:   id,
		Path:     path,
		Message:  app.FormatMsg("Loader", app.MsgError, fmt.Sprintf("Failed to load %q module. %v", id, cause)),
		Cause:    cause,
	}
}

func manifestDiagnostic(path string, cause error) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     CodeManifestFailed,
		Path:     path,
		Message:  app.FormatMsg("Loader", app.MsgError, fmt.Sprintf("Failed to read manifest %s. %v", path, cause)),
		Cause:    cause,
	}
}

func warningDiagnostic(code, path, msg string, cause error) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Path:     path,
		Message:  app.FormatMsg("Loader", app.MsgCaution, msg),
		Cause:    cause,
	}
}
