// Package fileutil holds file mode constants shared by the CLI and the MCP
// server.
package fileutil

import "os"

// OwnerReadWrite is the mode of written reports, which may carry private
// metadata fields.
const OwnerReadWrite os.FileMode = 0o600
