// Package boot runs device startup: mount the flash filesystem, load the
// configuration and, only when both succeed, hand the snapshot to the
// bring-up stages (network, peripherals).
//
// A failed mount or load halts the sequence; no stage ever sees a partial
// configuration.
package boot
