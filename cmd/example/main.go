// Command example drives the CTAPHID engine and the reference
// Authenticator entirely in-process, without a real USB HID transport:
// it hand-assembles the frames a host would send and prints what the
// engine replies with at each step. Useful as a smoke test and as a
// worked example of the wire-level state machine.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/go-ctap/fido2-authenticator/pkg/authenticator"
	"github.com/go-ctap/fido2-authenticator/pkg/ctaphid"
)

func main() {
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))

	auth := authenticator.New(uuid.New())
	engine := ctaphid.NewEngine(auth, ctaphid.WithLogger(logger))

	cid, err := initChannel(engine)
	if err != nil {
		panic(err)
	}
	fmt.Printf("allocated channel: %#08x\n", uint32(cid))

	reply := send(engine, cid, ctaphid.CommandPing, []byte("hello, authenticator"))
	fmt.Printf("ping echoed: %q\n", reply)

	req := map[int]any{
		1: []byte{0xAA, 0xBB, 0xCC, 0xDD},
		2: map[string]any{"id": "example.com"},
		3: map[string]any{"id": []byte{0x01}},
		4: []map[string]any{{"type": "public-key", "alg": int64(-7)}},
	}
	params, err := cbor.Marshal(req)
	if err != nil {
		panic(err)
	}

	body := append([]byte{0x01}, params...)
	resp := send(engine, cid, ctaphid.CommandCBOR, body)

	var obj map[int]any
	if err := cbor.Unmarshal(resp, &obj); err != nil {
		panic(err)
	}
	fmt.Printf("attestation format: %v\n", obj[1])
	if authData, ok := obj[2].([]byte); ok {
		fmt.Printf("authData length: %d bytes\n", len(authData))
	}
}

// initChannel sends CTAPHID_INIT on the broadcast channel and returns
// the newly allocated channel id from the response.
func initChannel(engine *ctaphid.Engine) (ctaphid.ChannelID, error) {
	nonce := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	frame := make([]byte, 64)
	frame[4] = byte(ctaphid.CommandInit) | 0x80
	frame[5] = 0
	frame[6] = byte(len(nonce))
	for i := range 4 {
		frame[i] = 0xFF
	}
	copy(frame[7:], nonce)

	var resp []byte
	for f := range engine.Handle(frame) {
		resp = f
	}
	if len(resp) < 19 {
		return 0, fmt.Errorf("short INIT response")
	}
	return ctaphid.ChannelID(uint32(resp[15])<<24 | uint32(resp[16])<<16 | uint32(resp[17])<<8 | uint32(resp[18])), nil
}

// send feeds the request through the engine as a single initialization
// frame (so it must fit in one 64-byte frame) and returns the response
// payload reassembled from the init frame and any continuation frames.
func send(engine *ctaphid.Engine, cid ctaphid.ChannelID, cmd ctaphid.Command, payload []byte) []byte {
	frame := make([]byte, 7+len(payload))
	frame[0] = byte(cid >> 24)
	frame[1] = byte(cid >> 16)
	frame[2] = byte(cid >> 8)
	frame[3] = byte(cid)
	frame[4] = byte(cmd) | 0x80
	frame[5] = byte(len(payload) >> 8)
	frame[6] = byte(len(payload))
	copy(frame[7:], payload)

	var out []byte
	first := true
	for f := range engine.Handle(frame) {
		if first {
			out = append(out, f[7:]...)
			first = false
			continue
		}
		out = append(out, f[5:]...)
	}
	return out
}
