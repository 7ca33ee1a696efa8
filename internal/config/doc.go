// Package config retrieves the device configuration from the KEY=VALUE text
// file on the flash filesystem.
//
// # File Format
//
// One pair per line, LF, CRLF or CR terminated:
//
//	# comment
//	; also a comment
//	DEVICE_TYPE=DOOR
//	PORTAL_PORT=8443
//
// Keys are matched ignoring ASCII case and split from the value on the first
// '='. Keys are limited to MaxKeyLength bytes and values to MaxValueLength
// bytes. A line without '=' makes every scan that reaches it fail.
//
// # Layers
//
// Store.Lookup streams the file for a single key under the filesystem lock.
// Loader.Load looks up every key, converts the values and returns an
// immutable Snapshot only when every key is valid:
//
//	store := config.NewStore(fs, config.WithLockWait(time.Second))
//	loader := config.NewLoader(store, logging.ConfigSink())
//	snap, err := loader.Load(ctx)
//	if err != nil {
//	    // halt: err is a *LoadError listing every failed key
//	}
//	port := snap.PortalPort()
//
// Errors are *Error values classified by ErrorKind; see KindOf and the IsXxx
// helpers.
package config
