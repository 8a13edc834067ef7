package profile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/koustreak/bootprofile/internal/errs"
	"go.yaml.in/yaml/v3"
)

// Format selects how a profile is written out.
type Format string

const (
	FormatProperties Format = "properties"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatJVM        Format = "jvm"
	FormatEnv        Format = "env"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatProperties, FormatJSON, FormatYAML, FormatJVM, FormatEnv:
		return f, nil
	}
	return "", errs.Newf(errs.ErrKindInvalidInput, "unknown output format %q: use properties, json, yaml, jvm or env", s)
}

// Extension is the file extension used when a rendered profile is stored.
func (f Format) Extension() string {
	switch f {
	case FormatJVM:
		return "args"
	case FormatYAML:
		return "yaml"
	default:
		return string(f)
	}
}

// ContentType is the MIME type of a rendered profile.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// document is the json/yaml shape of a TaskProfile.
type document struct {
	Task        Task              `json:"task,omitempty" yaml:"task,omitempty"`
	Properties  map[string]string `json:"properties" yaml:"properties"`
	JVMArgs     []string          `json:"jvmArgs,omitempty" yaml:"jvmArgs,omitempty"`
	Environment map[string]string `json:"environment,omitempty" yaml:"environment,omitempty"`
}

// MarshalJSON encodes the task profile as a document with sorted keys.
func (tp TaskProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(tp.document())
}

func (tp TaskProfile) document() document {
	d := document{
		Task:       tp.Task,
		Properties: tp.Properties.Map(),
		JVMArgs:    tp.JVMArgs,
	}
	if tp.Environment.Len() > 0 {
		d.Environment = tp.Environment.Map()
	}
	return d
}

// Render writes tp to w in format f. Output is deterministic.
func Render(w io.Writer, tp TaskProfile, f Format) error {
	bw := bufio.NewWriter(w)

	var err error
	switch f {
	case FormatProperties:
		err = writeProperties(bw, tp)
	case FormatJSON:
		enc := json.NewEncoder(bw)
		enc.SetIndent("", "  ")
		err = enc.Encode(tp.document())
	case FormatYAML:
		enc := yaml.NewEncoder(bw)
		enc.SetIndent(2)
		if err = enc.Encode(tp.document()); err == nil {
			err = enc.Close()
		}
	case FormatJVM:
		err = writeJVM(bw, tp)
	case FormatEnv:
		err = writeEnv(bw, tp)
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "unknown output format %q", string(f))
	}
	if err != nil {
		return fmt.Errorf("rendering %s profile: %w", f, err)
	}
	return bw.Flush()
}

// RenderConfiguration writes a plain resolved configuration.
func RenderConfiguration(w io.Writer, cfg Configuration, f Format) error {
	return Render(w, TaskProfile{Properties: cfg}, f)
}

func writeProperties(w io.Writer, tp TaskProfile) error {
	for _, k := range tp.Properties.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, tp.Properties.Get(k)); err != nil {
			return err
		}
	}
	if tp.Environment.Len() == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\n# environment\n"); err != nil {
		return err
	}
	for _, k := range tp.Environment.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, tp.Environment.Get(k)); err != nil {
			return err
		}
	}
	return nil
}

// writeJVM prints the launcher form: -D'key=value' ... followed by JVM args.
func writeJVM(w io.Writer, tp TaskProfile) error {
	tokens := make([]string, 0, tp.Properties.Len()+len(tp.JVMArgs))
	for _, k := range tp.Properties.Keys() {
		tokens = append(tokens, "-D"+shellQuote(k+"="+tp.Properties.Get(k)))
	}
	tokens = append(tokens, tp.JVMArgs...)
	_, err := fmt.Fprintln(w, strings.Join(tokens, " "))
	return err
}

func writeEnv(w io.Writer, tp TaskProfile) error {
	for _, k := range tp.Properties.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", EnvName(k), shellQuote(tp.Properties.Get(k))); err != nil {
			return err
		}
	}
	for _, k := range tp.Environment.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, shellQuote(tp.Environment.Get(k))); err != nil {
			return err
		}
	}
	return nil
}

var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// EnvName converts a property key to the relaxed-binding environment
// variable name: server.ssl.enabled becomes SERVER_SSL_ENABLED.
func EnvName(key string) string {
	return strings.ToUpper(envReplacer.Replace(key))
}

// shellQuote wraps s in single quotes unless it only holds characters
// that need no quoting.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./:@=,+", r)
}
