package imagemeta

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	pngstructure "github.com/dsoprea/go-png-image-structure/v2"
)

const xmpKeyword = "XML:com.adobe.xmp"

var (
	errNotPNG       = errors.New("not a valid PNG")
	errTruncatedPNG = errors.New("truncated PNG")
)

const iendChunkType = "IEND"

// pngChunks splits a PNG stream into its chunks and checks their CRCs. A
// stream that stops before IEND returns the chunks read so far together
// with errTruncatedPNG.
func pngChunks(data []byte) (*pngstructure.ChunkSlice, error) {
	mc, err := pngstructure.NewPngMediaParser().ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotPNG, err)
	}
	cs, ok := mc.(*pngstructure.ChunkSlice)
	if !ok {
		return nil, errNotPNG
	}
	chunks := cs.Chunks()
	if len(chunks) == 0 || chunks[len(chunks)-1].Type != iendChunkType {
		return cs, errTruncatedPNG
	}
	return cs, nil
}

func newChunk(typ string, data []byte) *pngstructure.Chunk {
	c := &pngstructure.Chunk{
		Type:   typ,
		Data:   data,
		Length: uint32(len(data)),
	}
	c.UpdateCrc32()
	return c
}

// insertAfterIHDR returns a copy of stream with a chunk placed directly
// after the header chunk.
func insertAfterIHDR(stream []byte, typ string, data []byte) ([]byte, error) {
	cs, err := pngChunks(stream)
	if err != nil {
		return nil, err
	}

	chunks := cs.Chunks()
	out := make([]*pngstructure.Chunk, 0, len(chunks)+1)
	out = append(out, chunks[0], newChunk(typ, data))
	out = append(out, chunks[1:]...)

	var buf bytes.Buffer
	if err := pngstructure.NewChunkSlice(out).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing PNG chunks: %w", err)
	}
	return buf.Bytes(), nil
}

// itxtPayload builds an uncompressed iTXt body with no language tag.
func itxtPayload(keyword string, text []byte) []byte {
	payload := make([]byte, 0, len(keyword)+5+len(text))
	payload = append(payload, keyword...)
	payload = append(payload, 0, 0, 0) // separator, compression flag, method
	payload = append(payload, 0, 0)    // empty language tag and translated keyword
	return append(payload, text...)
}

// parseITXt splits an iTXt body into its keyword and text, inflating
// compressed text.
func parseITXt(data []byte) (string, []byte, error) {
	keyEnd := bytes.IndexByte(data, 0)
	if keyEnd <= 0 || keyEnd+3 > len(data) {
		return "", nil, errors.New("malformed iTXt chunk")
	}
	keyword := string(data[:keyEnd])
	compressed := data[keyEnd+1] == 1
	rest := data[keyEnd+3:]
	// skip language tag and translated keyword
	for i := 0; i < 2; i++ {
		n := bytes.IndexByte(rest, 0)
		if n < 0 {
			return "", nil, errors.New("malformed iTXt chunk")
		}
		rest = rest[n+1:]
	}
	if !compressed {
		return keyword, rest, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return "", nil, fmt.Errorf("inflating iTXt: %w", err)
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, fmt.Errorf("inflating iTXt: %w", err)
	}
	return keyword, text, nil
}
