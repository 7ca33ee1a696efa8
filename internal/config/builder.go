package config

import "fmt"

// snapshotBuilder collects converted values during a load. Only the loader
// uses it, so a Snapshot can never be assembled piecemeal elsewhere.
type snapshotBuilder struct {
	snap Snapshot
	set  [numKeys]bool
}

// apply converts value for key and stores the result.
func (b *snapshotBuilder) apply(key Key, value string) error {
	var err error
	switch key {
	case KeyDeviceType:
		b.snap.deviceType, err = ParseDeviceType(value)
	case KeyDeviceName:
		b.snap.deviceName = value
	case KeyPortalAddress:
		b.snap.portalAddress = value
	case KeyPortalAPIKey:
		b.snap.portalAPIKey = value
	case KeyPortalPort:
		b.snap.portalPort, err = ParseUint16(key, value)
	case KeyWiFiSSID:
		b.snap.wifiSSID = value
	case KeyWiFiPSK:
		b.snap.wifiPSK = value
	case KeyLEDCount:
		b.snap.ledCount, err = ParseUint16(key, value)
	case KeyLEDType:
		b.snap.ledType, err = ParseLEDType(value)
	case KeyRFIDReaderType:
		b.snap.readerType, err = ParseReaderType(value)
	case KeyRFIDSkeletonCard:
		b.snap.skeletonCard, err = ParseSkeletonCard(value)
	case KeyConfigVersion:
		b.snap.configVersion, err = ParseUint16(key, value)
	default:
		return newError(KindInvalidArg, key, "unknown configuration key", nil)
	}
	if err != nil {
		return err
	}
	b.set[key] = true
	return nil
}

// build returns the snapshot once every key has been applied.
func (b *snapshotBuilder) build() (*Snapshot, error) {
	for k, ok := range b.set {
		if !ok {
			return nil, fmt.Errorf("config: %s was never set", Key(k))
		}
	}
	snap := b.snap
	return &snap, nil
}
