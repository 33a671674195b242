package converter

// Candidate is one emitted conversion result for a segment: a surface
// form paired with its reading and the cost decomposition that produced
// it.
type Candidate struct {
	Key, Value               string
	ContentKey, ContentValue string

	Prefix, Suffix, Description, Usage string

	Cost, WCost, StructureCost int32

	LID, RID uint16

	Attributes     Attribute
	SourceInfoBits SourceInfo
	Style          Style
	Command        Command

	// InnerSegmentBoundary holds one packed (k,v,ck,cv) tuple per
	// contributing lattice node, in begin-to-end order. An empty slice
	// means "single inner segment spanning the whole candidate".
	InnerSegmentBoundary []uint32
}

// EncodeLengths packs four byte-sized lengths into a single uint32:
// (k<<24)|(v<<16)|(ck<<8)|cv. It reports false, leaving the result
// unspecified, if any length exceeds 255.
func EncodeLengths(keyLen, valueLen, contentKeyLen, contentValueLen int) (uint32, bool) {
	if keyLen < 0 || keyLen > 255 || valueLen < 0 || valueLen > 255 ||
		contentKeyLen < 0 || contentKeyLen > 255 || contentValueLen < 0 || contentValueLen > 255 {
		return 0, false
	}
	packed := uint32(keyLen)<<24 | uint32(valueLen)<<16 | uint32(contentKeyLen)<<8 | uint32(contentValueLen)
	return packed, true
}

// DecodeLengths is the inverse of EncodeLengths.
func DecodeLengths(packed uint32) (keyLen, valueLen, contentKeyLen, contentValueLen int) {
	keyLen = int(packed >> 24 & 0xff)
	valueLen = int(packed >> 16 & 0xff)
	contentKeyLen = int(packed >> 8 & 0xff)
	contentValueLen = int(packed & 0xff)
	return
}

// PushBackInnerSegmentBoundary appends one (k,v,ck,cv) entry. On overflow
// (any length > 255) it reports false and clears the boundary vector
// entirely rather than leaving it partially populated — callers degrade
// gracefully to whole-candidate display, per the error-handling design.
func (c *Candidate) PushBackInnerSegmentBoundary(keyLen, valueLen, contentKeyLen, contentValueLen int) bool {
	packed, ok := EncodeLengths(keyLen, valueLen, contentKeyLen, contentValueLen)
	if !ok {
		c.InnerSegmentBoundary = nil
		return false
	}
	c.InnerSegmentBoundary = append(c.InnerSegmentBoundary, packed)
	return true
}

// InnerSegmentIterator walks a Candidate's boundary vector, tracking the
// current byte offsets into Key and Value.
type InnerSegmentIterator struct {
	cand               *Candidate
	idx                int
	keyOffset          int
	valueOffset        int
	curK, curV         int
	curCK, curCV       int
}

// NewInnerSegmentIterator begins iteration over cand's boundary vector.
func NewInnerSegmentIterator(cand *Candidate) *InnerSegmentIterator {
	return &InnerSegmentIterator{cand: cand}
}

// Done reports whether iteration has consumed every boundary entry.
func (it *InnerSegmentIterator) Done() bool {
	return it.idx >= len(it.cand.InnerSegmentBoundary)
}

// Next advances to the next inner segment, decoding its lengths and
// moving the key/value offsets forward by the previous step's k and v.
func (it *InnerSegmentIterator) Next() {
	if it.idx > 0 {
		it.keyOffset += it.curK
		it.valueOffset += it.curV
	}
	k, v, ck, cv := DecodeLengths(it.cand.InnerSegmentBoundary[it.idx])
	it.curK, it.curV, it.curCK, it.curCV = k, v, ck, cv
	it.idx++
}

// GetKey returns the current inner segment's full key slice.
func (it *InnerSegmentIterator) GetKey() string {
	return sliceAt(it.cand.Key, it.keyOffset, it.curK)
}

// GetValue returns the current inner segment's full value slice.
func (it *InnerSegmentIterator) GetValue() string {
	return sliceAt(it.cand.Value, it.valueOffset, it.curV)
}

// GetContentKey returns the current inner segment's stemmable key prefix.
func (it *InnerSegmentIterator) GetContentKey() string {
	return sliceAt(it.cand.Key, it.keyOffset, it.curCK)
}

// GetContentValue returns the current inner segment's stemmable value prefix.
func (it *InnerSegmentIterator) GetContentValue() string {
	return sliceAt(it.cand.Value, it.valueOffset, it.curCV)
}

func sliceAt(s string, offset, n int) string {
	if offset >= len(s) {
		return ""
	}
	end := offset + n
	if end > len(s) {
		end = len(s)
	}
	return s[offset:end]
}

// FunctionalKey returns the non-stem suffix of Key, i.e. the part beyond
// ContentKey. It returns "" when ContentKey is empty or longer than Key.
func (c *Candidate) FunctionalKey() string {
	if len(c.ContentKey) > len(c.Key) || c.ContentKey == "" {
		return ""
	}
	return c.Key[len(c.ContentKey):]
}

// FunctionalValue returns the non-stem suffix of Value, i.e. the part
// beyond ContentValue. It returns "" when ContentValue is empty or longer
// than Value.
func (c *Candidate) FunctionalValue() string {
	if len(c.ContentValue) > len(c.Value) || c.ContentValue == "" {
		return ""
	}
	return c.Value[len(c.ContentValue):]
}

// IsValid reports whether the candidate carries a non-empty key and
// value, the minimal well-formedness requirement for emission.
func (c *Candidate) IsValid() bool {
	return c.Key != "" && c.Value != ""
}
