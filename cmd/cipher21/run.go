package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ksurdacki/cipher21/cipher21"
	"github.com/ksurdacki/cipher21/keysource"
	"github.com/ksurdacki/cipher21/streamio"
)

// operationMode mirrors the three mutually exclusive modes the CLI
// exposes over the core's encrypt/decrypt surface.
type operationMode int

const (
	modeEncrypt operationMode = iota
	modeVerify
	modeDecrypt
)

// options holds the parsed CLI flags run needs, independent of cobra.
type options struct {
	mode        operationMode
	keyLocation string
	afterText   string
}

// run performs one encrypt/verify/decrypt invocation against stdin/stdout,
// returning the error (if any) that should determine the process exit
// code. It owns the key's lifetime: the key is scrubbed before run
// returns, success or failure.
func run(opts options, stdin io.Reader, stdout io.Writer) error {
	if opts.keyLocation == "" {
		return argumentError{msg: "encryption, verification and decryption require a --key"}
	}

	afterNs, err := parseAfterNs(opts.afterText)
	if err != nil {
		return err
	}

	key, err := keysource.Load(opts.keyLocation)
	if err != nil {
		return err
	}
	defer key.Scrub()

	start := time.Now()

	var attrs cipher21.Attributes
	switch opts.mode {
	case modeEncrypt:
		attrs, err = streamio.Encrypt(stdout, stdin, cipher21.NewEncrypter(key))
	case modeVerify:
		attrs, err = streamio.Decrypt(streamio.NullStream{}, stdin, cipher21.NewDecrypter(key))
	case modeDecrypt:
		attrs, err = streamio.Decrypt(stdout, stdin, cipher21.NewDecrypter(key))
	default:
		return argumentError{msg: "no operation mode selected"}
	}
	if err != nil {
		return err
	}

	logAttributes(attrs, time.Since(start))

	if opts.mode != modeEncrypt && int64(attrs.StreamTimestampNs) <= afterNs {
		return timestampRejectedError{threshold: opts.afterText}
	}
	return nil
}

func logAttributes(attrs cipher21.Attributes, elapsed time.Duration) {
	log.Printf("processing time: %.3f s", elapsed.Seconds())
	log.Printf("encryption timestamp: %s", formatTimestampNs(attrs.StreamTimestampNs))
	log.Printf("payload length: %d B", attrs.PayloadLength)
	log.Printf("MAC: %X", attrs.Tag)
}

// formatTimestampNs renders a nanosecond Unix timestamp the way the
// original tool does: "YYYY-MMDDTHH:MM:SS.fffffffffZ".
func formatTimestampNs(ns uint64) string {
	t := time.Unix(0, int64(ns)).UTC()
	return fmt.Sprintf("%s.%09dZ", t.Format("2006-0102T15:04:05"), ns%1_000_000_000)
}
