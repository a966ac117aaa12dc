package net

import (
	"bufio"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/game"
)

// Listener accepts TCP connections and runs one session per connection.
type Listener struct {
	world *game.World
	log   *zap.SugaredLogger
	ln    net.Listener
}

// Listen binds the TCP endpoint. Serve must be called to start accepting.
func Listen(addr string, world *game.World, log *zap.SugaredLogger) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{world: world, log: log, ln: ln}, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Serve accepts connections until the listener is closed. Each accepted
// connection gets its own reader goroutine; nothing here blocks on game
// state.
func (l *Listener) Serve() error {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		// Over-capacity connections are closed before a session ever
		// exists. Register re-checks under the world lock, so a race here
		// still cannot overfill the registry.
		if l.world.PlayerCount() >= l.world.Config().MaxPlayers {
			l.log.Infow("rejecting connection, server full", "remote", conn.RemoteAddr().String())
			_ = conn.Close()
			continue
		}
		s := newSession(newTCPTransport(conn), l.world, l.log)
		go s.run()
	}
}

// Close stops accepting. Live sessions keep running until their connections
// die.
func (l *Listener) Close() error {
	return l.ln.Close()
}

// tcpTransport frames messages as newline-delimited lines. The buffered
// reader reassembles lines across partial socket reads.
type tcpTransport struct {
	conn net.Conn
	r    *bufio.Reader
}

func newTCPTransport(conn net.Conn) *tcpTransport {
	return &tcpTransport{conn: conn, r: bufio.NewReader(conn)}
}

func (t *tcpTransport) ReadMessage() ([]byte, error) {
	line, err := t.r.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (t *tcpTransport) WriteMessage(data []byte) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	_, err := t.conn.Write(data)
	return err
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}

func (t *tcpTransport) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}
