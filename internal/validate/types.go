// SPDX-License-Identifier: MIT
package validate

// LogLevels lists the accepted levels, most verbose first.
var LogLevels = []string{"trace", "debug", "info", "warn", "error"}
