package reactor

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"io"
	"math/big"
	"net"
	"testing"
	"time"
)

func TestMemPipeFeedAndRead(t *testing.T) {
	p := newMemPipe()
	p.feed([]byte("hello"))

	buf := make([]byte, 16)
	n, err := p.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(buf[:n]) != "hello" {
		t.Fatalf("Read = %q, want %q", buf[:n], "hello")
	}
}

func TestMemPipeWriteAndTake(t *testing.T) {
	p := newMemPipe()
	if p.pendingOut() {
		t.Fatal("fresh pipe reports pending output")
	}

	if _, err := p.Write([]byte("cipher")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !p.pendingOut() {
		t.Fatal("pending output not reported")
	}
	if got := p.takeOut(); !bytes.Equal(got, []byte("cipher")) {
		t.Fatalf("takeOut = %q, want %q", got, "cipher")
	}
	if p.takeOut() != nil {
		t.Fatal("second takeOut returned data")
	}
}

func TestMemPipeCloseUnblocksRead(t *testing.T) {
	p := newMemPipe()
	done := make(chan error, 1)
	go func() {
		_, err := p.Read(make([]byte, 8))
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	p.close()

	select {
	case err := <-done:
		if err != io.EOF {
			t.Fatalf("Read after close = %v, want io.EOF", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Read did not unblock on close")
	}

	if _, err := p.Write([]byte("x")); err != io.ErrClosedPipe {
		t.Fatalf("Write after close = %v, want io.ErrClosedPipe", err)
	}
}

func TestSessionReadWouldBlock(t *testing.T) {
	ctx := NewTLSContextFromConfig(testServerConfig(t))
	s := ctx.NewSession()
	defer s.Free()

	if _, err := s.Read(make([]byte, 8)); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("Read on idle session = %v, want ErrWouldBlock", err)
	}
	if _, err := s.Write([]byte("early")); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("Write before handshake = %v, want ErrWouldBlock", err)
	}
}

func TestSessionHandshakeAndEcho(t *testing.T) {
	ctx := NewTLSContextFromConfig(testServerConfig(t))
	sess := ctx.NewSession()
	defer sess.Free()

	rawServer, rawClient := net.Pipe()
	defer rawServer.Close()
	defer rawClient.Close()

	stop := make(chan struct{})
	defer close(stop)

	// Socket-to-session pump, standing in for the reactor's read path.
	go func() {
		buf := make([]byte, 16384)
		for {
			n, err := rawServer.Read(buf)
			if n > 0 {
				sess.FeedInbound(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	// Session-to-socket pump, standing in for the write path.
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			if out := sess.TakeOutbound(); len(out) > 0 {
				if _, err := rawServer.Write(out); err != nil {
					return
				}
				continue
			}
			time.Sleep(time.Millisecond)
		}
	}()

	client := tls.Client(rawClient, &tls.Config{InsecureSkipVerify: true})
	if err := client.Handshake(); err != nil {
		t.Fatalf("client handshake: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		state, err := sess.Handshake()
		if err != nil {
			t.Fatalf("server handshake: %v", err)
		}
		if state == HandshakeComplete {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("server handshake did not complete")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := client.Write([]byte("ping")); err != nil {
		t.Fatalf("client write: %v", err)
	}

	buf := make([]byte, 64)
	var got []byte
	for len(got) < 4 {
		n, err := sess.Read(buf)
		if n > 0 {
			got = append(got, buf[:n]...)
			continue
		}
		if !errors.Is(err, ErrWouldBlock) {
			t.Fatalf("session read: %v", err)
		}
		if time.Now().After(deadline) {
			t.Fatal("plaintext never arrived")
		}
		time.Sleep(time.Millisecond)
	}
	if string(got) != "ping" {
		t.Fatalf("session read %q, want %q", got, "ping")
	}

	if _, err := sess.Write([]byte("pong")); err != nil {
		t.Fatalf("session write: %v", err)
	}

	reply := make([]byte, 4)
	client.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, err := io.ReadFull(client, reply); err != nil {
		t.Fatalf("client read: %v", err)
	}
	if string(reply) != "pong" {
		t.Fatalf("client read %q, want %q", reply, "pong")
	}
}

// testServerConfig builds a tls.Config around a throwaway self-signed
// certificate.
func testServerConfig(t *testing.T) *tls.Config {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}},
		MinVersion:   tls.VersionTLS12,
	}
}
