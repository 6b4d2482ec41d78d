package dossier

// AudioBackend plays the synthesiser output on a host device.
type AudioBackend interface {
	Start() error
	Close() error
}
