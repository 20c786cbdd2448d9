// Command cipher21 is the CLI front-end for the Cipher21 stream cipher: it
// reads plaintext or ciphertext on stdin, writes the other side to stdout
// (or nowhere, in verification mode), and reports the stream's observable
// attributes on the error channel.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// logAttributes never carries a timestamp prefix, matching the original
// tool's bare '%(message)s' log format; this is independent of --debug,
// which instead governs how a terminal error is reported below.
func init() {
	log.SetFlags(0)
}

var (
	encryptFlag  bool
	verifyFlag   bool
	decryptFlag  bool
	selfTestFlag bool
	keyLocation  string
	afterText    string
	debug        bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cipher21",
		Short:         "Stream authenticated encryption for year 2021.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if selfTestFlag {
				return selfTest()
			}

			mode, err := resolveMode()
			if err != nil {
				return err
			}

			return run(options{
				mode:        mode,
				keyLocation: keyLocation,
				afterText:   afterText,
			}, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().BoolVarP(&encryptFlag, "encrypt", "e", false, "Encryption mode.")
	cmd.Flags().BoolVarP(&verifyFlag, "verify", "v", false, "Verification mode.")
	cmd.Flags().BoolVarP(&decryptFlag, "decrypt", "d", false, "Decryption mode.")
	cmd.Flags().StringVarP(&keyLocation, "key", "k", "", "Secret key LOCATION: env:NAME, file:PATH, or fd:NUMBER.")
	cmd.Flags().StringVarP(&afterText, "after", "a", "2021-01-01T00Z",
		"Reject streams encrypted at or before this ISO-8601-with-Z timestamp.")
	cmd.Flags().BoolVar(&debug, "debug", false, "Report a failing error's full wrapped chain on exit.")
	cmd.Flags().BoolVar(&selfTestFlag, "self-test", false,
		"Run a built-in AEAD sanity check and exit, ignoring all other flags.")

	return cmd
}

func resolveMode() (operationMode, error) {
	selected := 0
	var mode operationMode
	if encryptFlag {
		selected++
		mode = modeEncrypt
	}
	if verifyFlag {
		selected++
		mode = modeVerify
	}
	if decryptFlag {
		selected++
		mode = modeDecrypt
	}

	switch selected {
	case 1:
		return mode, nil
	case 0:
		return 0, argumentError{msg: "one of --encrypt, --verify or --decrypt is required"}
	default:
		return 0, argumentError{msg: "--encrypt, --verify and --decrypt are mutually exclusive"}
	}
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprint(os.Stderr, formatError(err, debug))
	}
	os.Exit(exitCode(err))
}

// formatError renders err for the stderr error channel. Plain mode prints
// just the error's message, one line. With --debug it also walks the
// wrapped-error chain, mirroring the original tool's
// exc_info=logger.isEnabledFor(logging.DEBUG) traceback behavior.
func formatError(err error, debug bool) string {
	if !debug {
		return err.Error() + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", err)
	for wrapped := errors.Unwrap(err); wrapped != nil; wrapped = errors.Unwrap(wrapped) {
		fmt.Fprintf(&b, "  %+v\n", wrapped)
	}
	return b.String()
}
