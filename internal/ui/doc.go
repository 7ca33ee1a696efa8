// Package ui renders interlock-cfg output with Lipgloss.
//
// Commands print a Header describing what was read, then a Result box:
// green with the values found, or red with one line per failure and
// troubleshooting hints. Output is run-once; nothing here reads input.
//
// Logging is controlled separately through INTERLOCK_LOG_LEVEL and is silent
// by default, so styled output stays clean.
package ui
