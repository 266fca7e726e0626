package service

// KeyValueStore is the per-visitor string storage the services persist into.
// Namespaces keep one browser's keys apart from another's.
type KeyValueStore interface {
	Get(namespace, key string) (string, bool, error)
	Set(namespace, key, value string) error
	Delete(namespace, key string) error
}
