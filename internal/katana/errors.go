package katana

import (
	"fmt"
)

type ErrorKind string

const (
	Transport ErrorKind = "transport" // sieć, DNS, TLS
	Remote    ErrorKind = "remote"    // odpowiedź spoza 2xx
)

// APIError – błąd wywołania API Katany
type APIError struct {
	Kind       ErrorKind
	Op         string // "check" / "create"
	StatusCode int    // tylko Remote; 0 = odpowiedź 2xx nie do odczytania
	Message    string
	Err        error // tylko Transport
}

func (e *APIError) Error() string {
	if e.Kind == Transport {
		return fmt.Sprintf("katana %s: %v", e.Op, e.Err)
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("katana %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("katana %s: http %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Detail – sam opis, bez prefiksu (do komunikatu dla operatora)
func (e *APIError) Detail() string {
	if e.Kind == Transport {
		if e.Err == nil {
			return "transport error"
		}
		return e.Err.Error()
	}
	return e.Message
}
