package backup

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// maxDocumentSize leaves headroom over the 16MB server limit for dumps taken
// from older servers.
const maxDocumentSize = 48 * 1024 * 1024

// writeDocument appends one raw BSON document to a dump stream.
func writeDocument(w io.Writer, doc bson.Raw) error {
	_, err := w.Write(doc)
	return err
}

// readDocument reads the next BSON document of a dump stream. It returns
// io.EOF at a clean end of stream.
func readDocument(r io.Reader) (bson.Raw, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated document length: %w", err)
		}
		return nil, err
	}

	size := binary.LittleEndian.Uint32(header[:])
	if size < 5 || size > maxDocumentSize {
		return nil, fmt.Errorf("invalid document length %d", size)
	}

	doc := make([]byte, size)
	copy(doc, header[:])
	if _, err := io.ReadFull(r, doc[4:]); err != nil {
		return nil, fmt.Errorf("truncated document: %w", err)
	}

	raw := bson.Raw(doc)
	if err := raw.Validate(); err != nil {
		return nil, err
	}
	return raw, nil
}
