package editor

import (
	"log"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
)

// history is the undo/redo ring. States are kept as msgpack blobs:
// compact, and decoding always yields a fully independent model with
// no aliasing back into the live one.
type history struct {
	undo [][]byte
	redo [][]byte
}

// record snapshots the state about to be replaced and invalidates
// the redo branch. A state that fails to encode is simply not
// remembered; the edit itself still proceeds.
func (h *history) record(d *level.Data) {
	blob, err := msgpack.Marshal(d)
	if err != nil {
		log.Printf("editor history: drop snapshot: %v", err)
		return
	}
	h.undo = append(h.undo, blob)
	if len(h.undo) > parameter.EditorHistoryDepth {
		h.undo = h.undo[len(h.undo)-parameter.EditorHistoryDepth:]
	}
	h.redo = h.redo[:0]
}

// stepBack trades the current state for the most recent remembered
// one, parking the current state on the redo side.
func (h *history) stepBack(cur *level.Data) (*level.Data, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	blob := h.undo[len(h.undo)-1]
	prev, err := decodeState(blob)
	if err != nil {
		log.Printf("editor history: undo decode: %v", err)
		h.undo = h.undo[:len(h.undo)-1]
		return nil, false
	}
	if curBlob, err := msgpack.Marshal(cur); err == nil {
		h.redo = append(h.redo, curBlob)
	}
	h.undo = h.undo[:len(h.undo)-1]
	return prev, true
}

// stepForward is the mirror image of stepBack.
func (h *history) stepForward(cur *level.Data) (*level.Data, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	blob := h.redo[len(h.redo)-1]
	next, err := decodeState(blob)
	if err != nil {
		log.Printf("editor history: redo decode: %v", err)
		h.redo = h.redo[:len(h.redo)-1]
		return nil, false
	}
	if curBlob, err := msgpack.Marshal(cur); err == nil {
		h.undo = append(h.undo, curBlob)
	}
	h.redo = h.redo[:len(h.redo)-1]
	return next, true
}

func (h *history) canStepBack() bool    { return len(h.undo) > 0 }
func (h *history) canStepForward() bool { return len(h.redo) > 0 }

func decodeState(blob []byte) (*level.Data, error) {
	var d level.Data
	if err := msgpack.Unmarshal(blob, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
