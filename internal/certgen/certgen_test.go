package certgen

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerCertificate(t *testing.T) {
	certPEM, keyPEM, err := ServerCertificate([]string{"localhost", "127.0.0.1"}, 24*time.Hour)
	require.NoError(t, err)

	_, err = tls.X509KeyPair(certPEM, keyPEM)
	require.NoError(t, err, "cert and key must match")

	block, _ := pem.Decode(certPEM)
	require.NotNil(t, block)
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cert.Subject.CommonName)
	assert.Equal(t, []string{"localhost"}, cert.DNSNames)
	require.Len(t, cert.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", cert.IPAddresses[0].String())
	assert.Contains(t, cert.ExtKeyUsage, x509.ExtKeyUsageServerAuth)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), cert.NotAfter, time.Minute)

	pool := x509.NewCertPool()
	pool.AddCert(cert)
	_, err = cert.Verify(x509.VerifyOptions{DNSName: "localhost", Roots: pool})
	assert.NoError(t, err)
}

func TestServerCertificate_NoHosts(t *testing.T) {
	_, _, err := ServerCertificate(nil, time.Hour)
	assert.Error(t, err)
}

func TestWritePair(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "certs")

	certPath, keyPath, err := WritePair(dir, []byte("cert"), []byte("key"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "server.crt"), certPath)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(certPath)
	require.NoError(t, err)
	assert.Equal(t, "cert", string(data))
}
