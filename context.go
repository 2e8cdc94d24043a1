package wolio

import "context"

type deviceIDKey struct{}
type appVersionKey struct{}

// WithDeviceID attaches the install-scoped device identifier to the context.
// The API client forwards it as the X-Device-ID header on every request.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDKey{}, deviceID)
}

// DeviceIDFromContext extracts the device identifier set by [WithDeviceID].
func DeviceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(deviceIDKey{}).(string)
	return id, ok
}

// WithAppVersion attaches the host application version to the context.
// The API client forwards it as the X-App-Version header on every request.
func WithAppVersion(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, appVersionKey{}, version)
}

// AppVersionFromContext extracts the version set by [WithAppVersion].
func AppVersionFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(appVersionKey{}).(string)
	return v, ok
}
