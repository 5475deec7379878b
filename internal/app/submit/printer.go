package submit

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// Printer writes a gateway response for a human
type Printer interface {
	Print(w io.Writer, data interface{}) error
}

type jsonPrinter struct{}

type yamlPrinter struct{}

func newPrinter(format string) (Printer, error) {
	switch format {
	case formatJSON, "":
		return jsonPrinter{}, nil
	case formatYAML, "yml":
		return yamlPrinter{}, nil
	}
	return nil, errors.Errorf("Unknown output format '%s'", format)
}

func (jsonPrinter) Print(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(data), "Can't write json")
}

// Print goes through json so the gateway's field names and nulls are kept
func (yamlPrinter) Print(w io.Writer, data interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "Can't marshal")
	}
	var ms yaml.MapSlice
	if err = yaml.Unmarshal(b, &ms); err != nil {
		return errors.Wrap(err, "Can't convert to yaml")
	}
	b, err = yaml.Marshal(ms)
	if err != nil {
		return errors.Wrap(err, "Can't marshal yaml")
	}
	_, err = w.Write(b)
	return errors.Wrap(err, "Can't write yaml")
}
