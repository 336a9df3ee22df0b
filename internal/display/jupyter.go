package display

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JupyterSurface writes each payload as the content of a Jupyter
// display_data message, one JSON document per line.
type JupyterSurface struct {
	mu sync.Mutex
	w  io.Writer
}

func NewJupyterSurface(w io.Writer) *JupyterSurface {
	return &JupyterSurface{w: w}
}

type mimeBundle struct {
	Data     map[string]string         `json:"data"`
	Metadata map[string]map[string]any `json:"metadata"`
}

func (s *JupyterSurface) Display(p Payload) error {
	mime := p.MIMEType()
	bundle := mimeBundle{
		Data:     map[string]string{mime: base64.StdEncoding.EncodeToString(p.Data)},
		Metadata: map[string]map[string]any{},
	}
	if len(p.Metadata) > 0 {
		bundle.Metadata[mime] = p.Metadata
	}

	out, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("error encoding display bundle: %w", err)
	}
	out = append(out, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(out); err != nil {
		return fmt.Errorf("error writing display bundle: %w", err)
	}
	return nil
}
