package ftpsession

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gonzalop/ftpsession/ftp"
)

var testConfig = Config{
	Host:     "ftp.example.com",
	User:     "alice",
	Password: "secret",
}

// handlerSet stores the lifecycle handlers a session registers on a mock
// transport so the test can fire them.
type handlerSet struct {
	mu       sync.Mutex
	handlers map[ftp.Event][]func()
}

func (h *handlerSet) add(event ftp.Event, fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[event] = append(h.handlers[event], fn)
}

func (h *handlerSet) fire(event ftp.Event) {
	h.mu.Lock()
	fns := append([]func(){}, h.handlers[event]...)
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// dialQueue hands out queued transports, one per dial.
type dialQueue struct {
	mu     sync.Mutex
	addrs  []string
	conns  []Transport
	onDial func()
}

func (d *dialQueue) dial(addr string) (Transport, error) {
	if d.onDial != nil {
		d.onDial()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addrs = append(d.addrs, addr)
	if len(d.conns) == 0 {
		return nil, errors.New("no transport queued")
	}
	t := d.conns[0]
	d.conns = d.conns[1:]
	return t, nil
}

func (d *dialQueue) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.addrs)
}

type recordingMetrics struct {
	mu          sync.Mutex
	commands    []string
	failed      []string
	connections []string
	health      []bool
}

func (m *recordingMetrics) RecordCommand(cmd string, success bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, cmd)
	if !success {
		m.failed = append(m.failed, cmd)
	}
}

func (m *recordingMetrics) RecordConnection(_ bool, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections = append(m.connections, reason)
}

func (m *recordingMetrics) RecordHealthCheck(healthy bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.health = append(m.health, healthy)
}

func newMockTransport(ctrl *gomock.Controller) (*MockTransport, *handlerSet) {
	m := NewMockTransport(ctrl)
	hs := &handlerSet{handlers: make(map[ftp.Event][]func())}
	m.EXPECT().On(gomock.Any(), gomock.Any()).Do(hs.add).AnyTimes()
	return m, hs
}

// expectHandshake makes Connect succeed and fire greeting then ready.
func expectHandshake(m *MockTransport, hs *handlerSet) *gomock.Call {
	return m.EXPECT().Connect(gomock.Any(), "alice", "secret").
		DoAndReturn(func(context.Context, string, string) error {
			hs.fire(ftp.EventGreeting)
			hs.fire(ftp.EventReady)
			return nil
		})
}

func expectNamingFormat(m *MockTransport, namefmt string) *gomock.Call {
	return m.EXPECT().Site("NAMEFMT", namefmt).
		Return(&ftp.Response{Code: 200, Message: "Command SITE NAMEFMT accepted"}, nil)
}

func newTestSession(t *testing.T, cfg Config, dq *dialQueue, opts ...Option) *Session {
	t.Helper()
	s, err := New(cfg, append([]Option{WithDialer(dq.dial)}, opts...)...)
	require.NoError(t, err)
	return s
}

// connectedSession returns a ready session backed by a mock transport.
func connectedSession(t *testing.T, opts ...Option) (*Session, *MockTransport, *dialQueue) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m, hs := newMockTransport(ctrl)
	expectHandshake(m, hs)
	expectNamingFormat(m, DefaultNamingFormat)

	dq := &dialQueue{conns: []Transport{m}}
	s := newTestSession(t, testConfig, dq, opts...)
	require.NoError(t, s.EnsureConnected(context.Background()))
	require.Equal(t, StateReady, s.State())
	return s, m, dq
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantPort    int
		wantNameFmt string
		wantErr     string
	}{
		{
			name:        "defaults",
			cfg:         Config{Host: "ftp.example.com"},
			wantPort:    21,
			wantNameFmt: "1",
		},
		{
			name:        "explicit values",
			cfg:         Config{Host: "as400", Port: 2121, NamingFormat: "0"},
			wantPort:    2121,
			wantNameFmt: "0",
		},
		{
			name:    "missing host",
			cfg:     Config{Port: 21},
			wantErr: "host is required",
		},
		{
			name:    "port out of range",
			cfg:     Config{Host: "h", Port: 70000},
			wantErr: "out of range",
		},
		{
			name:    "unknown naming format",
			cfg:     Config{Host: "h", NamingFormat: "2"},
			wantErr: "naming format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, s.Config().Port)
			assert.Equal(t, tt.wantNameFmt, s.Config().NamingFormat)
			assert.Equal(t, StateDisconnected, s.State())
		})
	}
}

func TestNewOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil logger", WithLogger(nil)},
		{"nil dialer", WithDialer(nil)},
		{"nil metrics", WithMetrics(nil)},
		{"zero poll interval", WithPollInterval(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testConfig, tt.opt)
			assert.Error(t, err)
		})
	}
}

func TestConfigAddr(t *testing.T) {
	assert.Equal(t, "ftp.example.com:21", Config{Host: "ftp.example.com", Port: 21}.Addr())
	assert.Equal(t, "[::1]:2121", Config{Host: "::1", Port: 2121}.Addr())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "suspect", StateSuspect.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestAddressingState(t *testing.T) {
	cfg := testConfig
	cfg.CurrentFolder = "/home/alice"
	cfg.CurrentLibrary = "QGPL"

	s, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/home/alice", s.CurrentFolder())
	assert.Equal(t, "QGPL", s.CurrentLibrary())

	s.SetCurrentLibrary("MYLIB")
	assert.Equal(t, "MYLIB", s.CurrentLibrary())
}

func TestClose(t *testing.T) {
	s, m, _ := connectedSession(t)
	m.EXPECT().Quit().Return(nil)

	require.NoError(t, s.Close())
	assert.Equal(t, StateDisconnected, s.State())
	assert.ErrorIs(t, s.EnsureConnected(context.Background()), ErrSessionClosed)

	// Second close is a no-op.
	assert.NoError(t, s.Close())
}

func TestCloseWithoutConnection(t *testing.T) {
	dq := &dialQueue{}
	s := newTestSession(t, testConfig, dq)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.EnsureConnected(context.Background()), ErrSessionClosed)
	assert.Zero(t, dq.count())
}
