package storage

import "tra-stations/models"

// RecordWriter is the interface any output backend must satisfy.
// Write may be called once per run; Close releases the backend.
type RecordWriter interface {
	Name() string
	Write(rs *models.RecordSet) error
	Close() error
}

// RecordLoader loads a record set from external storage.
type RecordLoader interface {
	Load(path string) (*models.RecordSet, error)
}
