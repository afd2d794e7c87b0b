// Package main writes a self-signed development certificate for the API
// server into the "certs" directory. Start the server with
// -tls-cert certs/server.crt -tls-key certs/server.key to use it.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atinyakov/VocabDeck/internal/certgen"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("certgen", pflag.ContinueOnError)
	dir := fs.StringP("out", "o", "certs", "output directory")
	hosts := fs.StringSlice("host", []string{"localhost", "127.0.0.1"}, "DNS names or IPs the certificate is valid for")
	validFor := fs.Duration("valid-for", 365*24*time.Hour, "certificate lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	certPEM, keyPEM, err := certgen.ServerCertificate(*hosts, *validFor)
	if err != nil {
		return err
	}
	certPath, keyPath, err := certgen.WritePair(*dir, certPEM, keyPEM)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Certificate: %s\nKey:         %s\n", certPath, keyPath)
	return nil
}
