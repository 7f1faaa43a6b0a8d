package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"case-analysis/pkg/llmprovider"
)

// readAttachment loads a local file as an attachment. The MIME type is
// sniffed from the content; markdown and JSON keep their text types so the
// OpenAI-compatible path can inline them.
func readAttachment(path string) (llmprovider.AttachedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return llmprovider.AttachedFile{}, fmt.Errorf("read %s: %w", path, err)
	}

	return llmprovider.AttachedFile{
		Name:      filepath.Base(path),
		MIMEType:  detectMIME(path, data),
		SizeBytes: int64(len(data)),
		Payload:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

func detectMIME(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".json":
		return "application/json"
	}

	mt := mimetype.Detect(data)
	if mt.Is("text/plain") {
		return "text/plain"
	}
	// Drop parameters such as charset.
	mediaType, _, _ := strings.Cut(mt.String(), ";")
	return mediaType
}
