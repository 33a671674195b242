/*
Package server implements msgpack IPC for the conversion core.

The server operates on a request/response model: a client writes one
msgpack-encoded message to stdin per request and reads one msgpack-encoded
message from stdout per response. msgpack values are self-delimiting, so
unlike a line-oriented JSON protocol no newline framing is required — the
encoder/decoder pair track their own boundaries.

# Message Types

ConversionRequest/ConversionResponse drive the N-best conversion path:
a reading key goes in, ranked Segment/Candidate data comes out.

	{"id": "req_001", "key": "わたし", "type": "conversion", "expand": 5}

The response carries one SegmentWire per produced Segment, with each
CandidateWire exposing key/value plus the same cost decomposition the
core tracks internally:

	{"id": "req_001", "segments": [{"key": "わたし", "candidates": [...]}], "t": 3}

HistoryRequest/HistoryResponse wrap pkg/aes256's CBC primitives to
encrypt or decrypt an opaque persisted-history payload; the server never
interprets the payload bytes.

DictionaryRequest/DictionaryResponse mirror runtime-adjustable dictionary
options (chunk loading) without requiring a config reload.
*/
package server

// ConversionRequest drives StartConversion/StartPrediction/StartSuggestion.
type ConversionRequest struct {
	ID         string `msgpack:"id"`
	Key        string `msgpack:"key"`
	Type       string `msgpack:"type"` // "conversion", "prediction", "suggestion", "reverse"
	ExpandSize int    `msgpack:"expand,omitempty"`
}

// CandidateWire is the wire projection of a converter.Candidate.
type CandidateWire struct {
	Key        string `msgpack:"key"`
	Value      string `msgpack:"value"`
	Cost       int32  `msgpack:"cost"`
	WCost      int32  `msgpack:"wcost"`
	Structure  int32  `msgpack:"structure"`
	Attributes uint32 `msgpack:"attr"`
}

// SegmentWire is the wire projection of a converter.Segment.
type SegmentWire struct {
	Key        string          `msgpack:"key"`
	Candidates []CandidateWire `msgpack:"candidates"`
}

// ConversionResponse answers a ConversionRequest.
type ConversionResponse struct {
	ID        string        `msgpack:"id"`
	Status    string        `msgpack:"status"`
	Error     string        `msgpack:"error,omitempty"`
	Segments  []SegmentWire `msgpack:"segments,omitempty"`
	TimeTaken int64         `msgpack:"t"`
}

// HistoryRequest wraps an opaque payload for encryption or decryption.
type HistoryRequest struct {
	ID      string `msgpack:"id"`
	Action  string `msgpack:"action"` // "encrypt", "decrypt"
	Payload []byte `msgpack:"payload"`
}

// HistoryResponse answers a HistoryRequest.
type HistoryResponse struct {
	ID      string `msgpack:"id"`
	Status  string `msgpack:"status"`
	Error   string `msgpack:"error,omitempty"`
	Payload []byte `msgpack:"payload,omitempty"`
}

// DictionaryRequest manages runtime dictionary chunk loading.
type DictionaryRequest struct {
	ID      string `msgpack:"id"`
	Action  string `msgpack:"action"` // "get_info", "load_chunk", "unload_chunk"
	ChunkID *int   `msgpack:"chunk_id,omitempty"`
}

// DictionaryResponse answers a DictionaryRequest.
type DictionaryResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Error        string `msgpack:"error,omitempty"`
	LoadedChunks int    `msgpack:"loaded_chunks,omitempty"`
	TotalWords   int    `msgpack:"total_words,omitempty"`
}
