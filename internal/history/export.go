package history

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// Export writes entries as "json" or "yaml".
func Export(w io.Writer, entries []Entry, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "", "json":
		data, err = Encode(entries)
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml", "yml":
		if entries == nil {
			entries = []Entry{}
		}
		data, err = yaml.Marshal(entries)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
