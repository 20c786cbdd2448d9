// Package keysource resolves a --key LOCATION reference of the form
// `env:NAME`, `file:PATH` or `fd:NUMBER` into a validated streamkey.Key,
// the core's one boundary with the excluded argument-parsing layer.
package keysource

import (
	"os"
	"strconv"
	"strings"

	"github.com/ksurdacki/cipher21/streamkey"
)

// Load resolves location (`env:NAME`, `file:PATH`, or `fd:NUMBER`) into a
// validated Key. Key material behind env: and file:/fd: sources is always
// treated as hex-encoded text, matching the CLI's documented LOCATION
// contract.
func Load(location string) (*streamkey.Key, error) {
	scheme, value, ok := strings.Cut(location, ":")
	if !ok {
		return nil, SchemeError{Location: location}
	}

	switch scheme {
	case "env":
		return loadFromEnv(value)
	case "file":
		return loadFromFile(value)
	case "fd":
		return loadFromFD(value)
	default:
		return nil, SchemeError{Location: location, Scheme: scheme}
	}
}

func loadFromEnv(name string) (*streamkey.Key, error) {
	hexValue, ok := os.LookupEnv(name)
	if !ok || hexValue == "" {
		return nil, EnvVarError{Name: name}
	}
	key, err := streamkey.FromHexBytes([]byte(hexValue))
	if err != nil {
		return nil, SourceError{Location: "env:" + name, Err: err}
	}
	return key, nil
}

func loadFromFile(path string) (*streamkey.Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SourceError{Location: "file:" + path, Err: err}
	}
	defer f.Close()

	key, err := streamkey.FromHexReader(f)
	if err != nil {
		return nil, SourceError{Location: "file:" + path, Err: err}
	}
	return key, nil
}

func loadFromFD(number string) (*streamkey.Key, error) {
	fd, err := strconv.ParseUint(number, 10, 32)
	if err != nil {
		return nil, SourceError{Location: "fd:" + number, Err: err}
	}

	f := os.NewFile(uintptr(fd), "fd:"+number)
	if f == nil {
		return nil, SourceError{Location: "fd:" + number, Err: os.ErrInvalid}
	}
	defer f.Close()

	key, err := streamkey.FromHexReader(f)
	if err != nil {
		return nil, SourceError{Location: "fd:" + number, Err: err}
	}
	return key, nil
}
