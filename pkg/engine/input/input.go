package input

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// escapeTimeout is how long a lone ESC waits for the rest of a sequence
const escapeTimeout = 50 * time.Millisecond

// KeyReader reads single key presses from a terminal in raw mode
type KeyReader struct {
	in      io.Reader
	fd      int
	raw     bool
	timeout time.Duration

	pumpOnce sync.Once
	bytes    chan byteRead
	err      error
	pending  []byte
}

type byteRead struct {
	b   byte
	err error
}

// NewKeyReader reads from stdin
func NewKeyReader() *KeyReader {
	return &KeyReader{in: os.Stdin, fd: int(os.Stdin.Fd()), timeout: escapeTimeout}
}

// newKeyReaderFrom reads from r without touching terminal modes
func newKeyReaderFrom(r io.Reader) *KeyReader {
	return &KeyReader{in: r, fd: -1, timeout: escapeTimeout}
}

// EnterRaw keeps the terminal in raw mode until the returned restore func is
// called. Reads in between skip the per-key mode switch, so keys pressed
// between reads are never echoed.
func (k *KeyReader) EnterRaw() (restore func(), err error) {
	if k.fd < 0 || !term.IsTerminal(k.fd) {
		return func() {}, nil
	}
	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		return nil, fmt.Errorf("input: cannot set terminal to raw mode: %w", err)
	}
	k.raw = true
	return func() {
		k.raw = false
		term.Restore(k.fd, oldState)
	}, nil
}

// ReadRaw blocks until one key is pressed and returns it as a RawInput. The
// terminal is put into raw mode for the duration of the read.
func (k *KeyReader) ReadRaw() (RawInput, error) {
	if !k.raw && k.fd >= 0 && term.IsTerminal(k.fd) {
		oldState, err := term.MakeRaw(k.fd)
		if err != nil {
			return RawInput{}, fmt.Errorf("input: cannot set terminal to raw mode: %w", err)
		}
		defer term.Restore(k.fd, oldState)
	}

	code, err := k.readCode()
	if err != nil {
		return RawInput{}, err
	}
	return RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}, nil
}

// ReadIntent reads one key and maps it through the bindings
func (k *KeyReader) ReadIntent() (Intent, error) {
	raw, err := k.ReadRaw()
	if err != nil {
		return Intent{}, err
	}
	return MapToIntent(NewDebouncedInput(raw)), nil
}

// pump copies bytes from the underlying reader into a channel so reads can
// time out. It stops at the first error.
func (k *KeyReader) pump() {
	k.bytes = make(chan byteRead, 64)
	go func() {
		buf := make([]byte, 1)
		for {
			_, err := io.ReadFull(k.in, buf)
			k.bytes <- byteRead{b: buf[0], err: err}
			if err != nil {
				return
			}
		}
	}()
}

func (k *KeyReader) readByte() (byte, error) {
	b, _, err := k.nextByte(0)
	return b, err
}

// nextByte returns the next byte. With a positive wait it gives up after that
// long and reports ok == false.
func (k *KeyReader) nextByte(wait time.Duration) (b byte, ok bool, err error) {
	if len(k.pending) > 0 {
		b, k.pending = k.pending[0], k.pending[1:]
		return b, true, nil
	}
	if k.err != nil {
		return 0, false, k.err
	}
	k.pumpOnce.Do(k.pump)

	var r byteRead
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case r = <-k.bytes:
		case <-timer.C:
			return 0, false, nil
		}
	} else {
		r = <-k.bytes
	}
	if r.err != nil {
		k.err = r.err
		return 0, false, r.err
	}
	return r.b, true, nil
}

// unread pushes b back to be returned by the next read
func (k *KeyReader) unread(b byte) {
	k.pending = append([]byte{b}, k.pending...)
}

// readCode decodes one key press into a code understood by the bindings
func (k *KeyReader) readCode() (string, error) {
	b, err := k.readByte()
	if err != nil {
		return "", err
	}

	switch {
	case b == 3:
		return "ctrl_c", nil
	case b == 0x1b:
		return k.readEscape()
	case b == ' ':
		return "space", nil
	case b == '\r' || b == '\n':
		return "enter", nil
	case b >= 32 && b < 127:
		return strings.ToLower(string(b)), nil
	}
	return "", nil
}

// readEscape handles CSI (ESC [) and SS3 (ESC O) arrow sequences. An ESC not
// followed by one of those within escapeTimeout is a lone escape, and the byte
// after it, if any, is kept for the next read.
func (k *KeyReader) readEscape() (string, error) {
	b2, ok, err := k.nextByte(k.timeout)
	if err != nil || !ok {
		return "escape", nil
	}
	if b2 != '[' && b2 != 'O' {
		k.unread(b2)
		return "escape", nil
	}
	b3, err := k.readByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	// Unknown escape sequence - discard it
	return "", nil
}
