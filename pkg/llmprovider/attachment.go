package llmprovider

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"case-analysis/pkg/gemini"
	"case-analysis/pkg/openaicompat"
)

// AttachmentKind tells how an attachment is carried over the HTTP protocol.
type AttachmentKind int

const (
	AttachmentBinary AttachmentKind = iota
	AttachmentImage
	AttachmentText
)

// textMIMETypes are decoded and inlined as text blocks.
var textMIMETypes = map[string]bool{
	"text/plain":       true,
	"text/markdown":    true,
	"application/json": true,
}

// ClassifyAttachment maps a declared MIME type to an AttachmentKind.
// Parameters such as charset are ignored.
func ClassifyAttachment(mimeType string) AttachmentKind {
	mt := baseMIMEType(mimeType)
	switch {
	case strings.HasPrefix(mt, "image/"):
		return AttachmentImage
	case textMIMETypes[mt]:
		return AttachmentText
	default:
		return AttachmentBinary
	}
}

func baseMIMEType(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return mt
}

// decodePayload decodes a standard base64 payload, tolerating missing padding
// and a data-URI prefix.
func decodePayload(payload string) ([]byte, error) {
	p := strings.TrimSpace(payload)
	if strings.HasPrefix(p, "data:") {
		if i := strings.Index(p, ","); i >= 0 {
			p = p[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(p)
	if err == nil {
		return data, nil
	}
	if data, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(p, "=")); rawErr == nil {
		return data, nil
	}
	return nil, err
}

// toInlineData converts files for the native protocol, keeping their order.
func toInlineData(files []AttachedFile) ([]gemini.InlineData, error) {
	out := make([]gemini.InlineData, 0, len(files))
	for _, f := range files {
		data, err := decodePayload(f.Payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAttachment, f.Name, err)
		}
		out = append(out, gemini.InlineData{MIMEType: f.MIMEType, Data: data})
	}
	return out, nil
}

// toContentPart converts one file for the OpenAI-compatible protocol.
func toContentPart(f AttachedFile) openaicompat.ContentPart {
	switch ClassifyAttachment(f.MIMEType) {
	case AttachmentImage:
		return openaicompat.ImagePart(fmt.Sprintf("data:%s;base64,%s", f.MIMEType, f.Payload))
	case AttachmentText:
		data, err := decodePayload(f.Payload)
		if err != nil {
			return openaicompat.TextPart(unsupportedNote(f))
		}
		return openaicompat.TextPart(wrapFileText(f.Name, string(data)))
	default:
		return openaicompat.TextPart(unsupportedNote(f))
	}
}

func wrapFileText(name, text string) string {
	return fmt.Sprintf("\n\n--- FILE START: %s ---\n%s\n--- FILE END ---\n", name, text)
}

func unsupportedNote(f AttachedFile) string {
	return fmt.Sprintf("\n\n[Attached file: %s (%s). This provider may not be able to read this file type natively. "+
		"Convert it to text or images if the analysis needs its content.]\n", f.Name, f.MIMEType)
}

// buildChatMessages builds the optional system message followed by one user
// message whose first part is the prompt and whose remaining parts are the
// attachments in input order.
func buildChatMessages(prompt string, files []AttachedFile, systemInstruction string) []openaicompat.Message {
	messages := make([]openaicompat.Message, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, openaicompat.Message{
			Role:    openaicompat.RoleSystem,
			Content: systemInstruction,
		})
	}

	parts := make([]openaicompat.ContentPart, 0, len(files)+1)
	parts = append(parts, openaicompat.TextPart(prompt))
	for _, f := range files {
		parts = append(parts, toContentPart(f))
	}

	return append(messages, openaicompat.Message{
		Role:    openaicompat.RoleUser,
		Content: parts,
	})
}
