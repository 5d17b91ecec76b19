package redis

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redigo "github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-tracker/internal/config"
)

const testPassword = "s3cret"

func configFor(t *testing.T, mr *miniredis.Miniredis, ginMode string) *config.Config {
	t.Helper()
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	return &config.Config{
		GinMode:       ginMode,
		RedisHost:     host,
		RedisPort:     port,
		RedisPassword: testPassword,
	}
}

func selfSignedCert(t *testing.T) tls.Certificate {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

func TestClientAndSessionPool_PlainOutsideProduction(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth(testPassword)
	cfg := configFor(t, mr, "debug")

	client, err := NewClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	pool := NewSessionPool(cfg)
	t.Cleanup(func() { _ = pool.Close() })
	conn := pool.Get()
	defer conn.Close()

	pong, err := redigo.String(conn.Do("PING"))
	require.NoError(t, err)
	assert.Equal(t, "PONG", pong)
}

func TestClientAndSessionPool_BothUseTLSInProduction(t *testing.T) {
	// The server certificate is not trusted, so a TLS dial fails on
	// verification. A plaintext dial would succeed instead.
	mr, err := miniredis.RunTLS(&tls.Config{Certificates: []tls.Certificate{selfSignedCert(t)}})
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	mr.RequireAuth(testPassword)
	cfg := configFor(t, mr, "release")

	_, err = NewClient(cfg)
	require.Error(t, err)
	assert.Regexp(t, `tls:|x509:`, err.Error())

	pool := NewSessionPool(cfg)
	t.Cleanup(func() { _ = pool.Close() })
	conn := pool.Get()
	defer conn.Close()

	_, err = conn.Do("PING")
	require.Error(t, err)
	assert.Regexp(t, `tls:|x509:`, err.Error())
}

func TestUseTLS(t *testing.T) {
	for _, tt := range []struct {
		ginMode, password string
		want              bool
	}{
		{"release", testPassword, true},
		{"release", "", false},
		{"debug", testPassword, false},
	} {
		cfg := &config.Config{GinMode: tt.ginMode, RedisPassword: tt.password}
		assert.Equal(t, tt.want, useTLS(cfg), "%s/%q", tt.ginMode, tt.password)
		assert.Equal(t, tt.want, len(dialOptions(cfg)) > 2, "%s/%q", tt.ginMode, tt.password)
	}
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "cache:6380", Addr(&config.Config{RedisHost: "cache", RedisPort: "6380"}))
}
