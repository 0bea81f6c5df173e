package session

import (
	"encoding/base64"
	"fmt"
	"os"
)

const (
	KeyEnvVar = "JOKES_SESSION_KEY"
)

// KeyFromEnv reads the signing key from the given environment variable
// and immediately clears it, so the key does not stay visible to the
// rest of the process tree.
func KeyFromEnv(varname string, getfn func(string) string, setfn func(string, string) error) (Key, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	setfn(varname, "")
	var key Key
	sz, err := base64.StdEncoding.Decode(key[:], []byte(val))
	if err != nil {
		return Key{}, fmt.Errorf("session: cannot decode string to valid key, cause %v", err)
	} else if sz != len(key) {
		return Key{}, fmt.Errorf("session: decoded key too short got %v expecting %v bytes", sz, len(key))
	}
	return key, nil
}
