package wm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// The i3 IPC wire format frames every message as
//
//	"i3-ipc" <payload length, uint32 LE> <message type, uint32 LE> <payload>
//
// in both directions. Reply types mirror request types.
var magic = [6]byte{'i', '3', '-', 'i', 'p', 'c'}

// Message types understood by i3 and sway.
const (
	TypeRunCommand    uint32 = 0
	TypeGetWorkspaces uint32 = 1
	TypeSubscribe     uint32 = 2
	TypeGetOutputs    uint32 = 3
	TypeGetTree       uint32 = 4
	TypeGetMarks      uint32 = 5
	TypeGetBarConfig  uint32 = 6
	TypeGetVersion    uint32 = 7
)

// writeMessage frames and sends one message. The frame is assembled into a
// single buffer so the write is one syscall on the socket.
func writeMessage(w io.Writer, msgType uint32, payload []byte) error {
	buf := make([]byte, 0, len(magic)+8+len(payload))
	buf = append(buf, magic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
	buf = binary.LittleEndian.AppendUint32(buf, msgType)
	buf = append(buf, payload...)
	_, err := w.Write(buf)
	return err
}

// readMessage reads one framed message, validating the magic string.
func readMessage(r io.Reader) (msgType uint32, payload []byte, err error) {
	header := make([]byte, len(magic)+8)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, err
	}
	if !bytes.Equal(header[:len(magic)], magic[:]) {
		return 0, nil, fmt.Errorf("bad magic %q in message header", header[:len(magic)])
	}
	length := binary.LittleEndian.Uint32(header[6:10])
	msgType = binary.LittleEndian.Uint32(header[10:14])
	payload = make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}
	return msgType, payload, nil
}
