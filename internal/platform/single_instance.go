package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock and receives requests from later launches.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve passes each request line from a later launch to handler until the guard is released.
func (guard *InstanceGuard) Serve(handler func(request string)) {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		line, err := bufio.NewReader(conn).ReadString('\n')
		_ = conn.Close()
		if err != nil {
			continue
		}
		handler(strings.TrimSpace(line))
	}
}

// SignalRunning asks the running instance to handle request.
func SignalRunning(appName, request string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("signal running instance: %w", err)
	}
	defer conn.Close()
	if _, err := fmt.Fprintln(conn, request); err != nil {
		return fmt.Errorf("signal running instance: %w", err)
	}
	return nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
