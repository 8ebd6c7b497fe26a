package repository

// CacheRepository stores computed loan results keyed by request fingerprint.
// A miss is reported as ok == false with a nil error.
type CacheRepository interface {
	Get(key string) (value string, ok bool, err error)
	Set(key string, value string) error
}
