package server

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/sorairo/mozcgo/pkg/aes256"
	"github.com/sorairo/mozcgo/pkg/converter"
	"github.com/sorairo/mozcgo/pkg/dictionary"
	"github.com/sorairo/mozcgo/pkg/engine"
)

// Server handles msgpack IPC for conversion requests over an arbitrary
// reader/writer pair, defaulting to stdin/stdout.
type Server struct {
	conv   engine.ConverterInterface
	loader *dictionary.ChunkLoader

	dec *msgpack.Decoder
	enc *msgpack.Encoder

	historyKey [32]byte
	historyIV  [16]byte
}

// NewServer builds a Server wired to conv for conversion requests and
// loader for dictionary management requests. r and w are typically
// os.Stdin and os.Stdout.
func NewServer(conv engine.ConverterInterface, loader *dictionary.ChunkLoader, r io.Reader, w io.Writer) *Server {
	return &Server{
		conv:   conv,
		loader: loader,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// SetHistoryKey installs the AES-256 key/IV pair EncryptHistory and
// DecryptHistory use for HistoryRequest payloads.
func (s *Server) SetHistoryKey(key [32]byte, iv [16]byte) {
	s.historyKey = key
	s.historyIV = iv
}

// Start reads requests from the decoder until EOF, dispatching each to
// its handler, which writes one response per request it can decode.
// Requests of unrecognized shape, or that fail to decode into their
// request type, are logged and get no response.
func (s *Server) Start() error {
	log.Debug("starting server")
	for {
		var raw map[string]any
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("decoding request: %v", err)
			return err
		}
		s.dispatch(raw)
	}
}

func (s *Server) dispatch(raw map[string]any) {
	switch {
	case raw["type"] != nil:
		s.handleConversion(raw)
	case raw["payload"] != nil:
		s.handleHistory(raw)
	case raw["action"] != nil:
		s.handleDictionary(raw)
	default:
		log.Warnf("unrecognized request shape: %v", raw)
	}
}

func remarshal[T any](raw map[string]any, out *T) error {
	b, err := msgpack.Marshal(raw)
	if err != nil {
		return err
	}
	return msgpack.Unmarshal(b, out)
}

func (s *Server) send(v any) {
	if err := s.enc.Encode(v); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) handleConversion(raw map[string]any) {
	var req ConversionRequest
	if err := remarshal(raw, &req); err != nil {
		log.Errorf("decoding conversion request: %v", err)
		return
	}

	start := time.Now()
	segments := converter.NewSegments()

	var ok bool
	switch req.Type {
	case "prediction":
		ok = s.conv.StartPrediction(segments, req.Key)
	case "suggestion":
		ok = s.conv.StartSuggestion(segments, req.Key)
	case "reverse":
		ok = s.conv.StartReverseConversion(segments, req.Key)
	default:
		ok = s.conv.StartConversion(segments, req.Key)
	}
	elapsed := time.Since(start)

	if !ok {
		s.send(ConversionResponse{
			ID:        req.ID,
			Status:    "error",
			Error:     "conversion failed",
			TimeTaken: elapsed.Milliseconds(),
		})
		return
	}

	wireSegments := make([]SegmentWire, 0, segments.Size())
	for i := 0; i < segments.Size(); i++ {
		seg := segments.Segment(i)
		cands := make([]CandidateWire, 0, seg.CandidatesSize())
		for j := 0; j < seg.CandidatesSize(); j++ {
			c := seg.Candidate(j)
			cands = append(cands, CandidateWire{
				Key:        c.Key,
				Value:      c.Value,
				Cost:       c.Cost,
				WCost:      c.WCost,
				Structure:  c.StructureCost,
				Attributes: uint32(c.Attributes),
			})
		}
		wireSegments = append(wireSegments, SegmentWire{Key: seg.Key(), Candidates: cands})
	}

	s.send(ConversionResponse{
		ID:        req.ID,
		Status:    "ok",
		Segments:  wireSegments,
		TimeTaken: elapsed.Milliseconds(),
	})
}

func (s *Server) handleHistory(raw map[string]any) {
	var req HistoryRequest
	if err := remarshal(raw, &req); err != nil {
		log.Errorf("decoding history request: %v", err)
		return
	}

	switch req.Action {
	case "encrypt":
		s.send(HistoryResponse{ID: req.ID, Status: "ok", Payload: EncryptHistory(s.historyKey, s.historyIV, req.Payload)})
	case "decrypt":
		s.send(HistoryResponse{ID: req.ID, Status: "ok", Payload: DecryptHistory(s.historyKey, s.historyIV, req.Payload)})
	default:
		s.send(HistoryResponse{ID: req.ID, Status: "error", Error: "unknown action: " + req.Action})
	}
}

func (s *Server) handleDictionary(raw map[string]any) {
	var req DictionaryRequest
	if err := remarshal(raw, &req); err != nil {
		log.Errorf("decoding dictionary request: %v", err)
		return
	}

	if s.loader == nil {
		s.send(DictionaryResponse{ID: req.ID, Status: "error", Error: "no dictionary loader configured"})
		return
	}

	switch req.Action {
	case "get_info":
		stats := s.loader.Stats()
		s.send(DictionaryResponse{ID: req.ID, Status: "ok", LoadedChunks: stats.LoadedChunks, TotalWords: stats.TotalWords})
	case "load_chunk":
		if req.ChunkID == nil {
			s.send(DictionaryResponse{ID: req.ID, Status: "error", Error: "missing chunk_id"})
			return
		}
		if err := s.loader.LoadSpecificChunk(*req.ChunkID); err != nil {
			s.send(DictionaryResponse{ID: req.ID, Status: "error", Error: err.Error()})
			return
		}
		s.send(DictionaryResponse{ID: req.ID, Status: "ok"})
	case "unload_chunk":
		if req.ChunkID == nil {
			s.send(DictionaryResponse{ID: req.ID, Status: "error", Error: "missing chunk_id"})
			return
		}
		if err := s.loader.UnloadChunk(*req.ChunkID); err != nil {
			s.send(DictionaryResponse{ID: req.ID, Status: "error", Error: err.Error()})
			return
		}
		s.send(DictionaryResponse{ID: req.ID, Status: "ok"})
	default:
		s.send(DictionaryResponse{ID: req.ID, Status: "error", Error: "unknown action: " + req.Action})
	}
}

// EncryptHistory encrypts an opaque persisted-history payload under key/iv,
// PKCS#7-padding it to a block multiple first since TransformCBC requires
// the plaintext already be block-aligned.
func EncryptHistory(key [32]byte, iv [16]byte, plaintext []byte) []byte {
	padded := pkcs7Pad(plaintext, 16)
	return aes256.TransformCBC(key, iv, padded)
}

// DecryptHistory reverses EncryptHistory.
func DecryptHistory(key [32]byte, iv [16]byte, ciphertext []byte) []byte {
	plain := aes256.InverseTransformCBC(key, iv, ciphertext)
	return pkcs7Unpad(plain)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	padLen := int(data[len(data)-1])
	if padLen <= 0 || padLen > len(data) {
		return data
	}
	return data[:len(data)-padLen]
}
