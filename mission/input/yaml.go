package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a mission described in YAML, with optional metadata.
//
//	name: Classic
//	description: Two rovers on a 5x5 plateau
//	plateau: {width: 5, height: 5}
//	rovers:
//	  - {x: 1, y: 2, heading: N, instructions: LMLMLMLMM}
//	  - {x: 3, y: 3, heading: E, instructions: MMRMMRMRRM}
type Document struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Plateau     *Dimensions     `yaml:"plateau"`
	Rovers      []DocumentRover `yaml:"rovers"`

	// Mission is filled in by ParseYAML
	Mission *Mission `yaml:"-"`
}

// DocumentRover is one rover entry of a YAML document
type DocumentRover struct {
	X            int    `yaml:"x"`
	Y            int    `yaml:"y"`
	Heading      string `yaml:"heading"`
	Instructions string `yaml:"instructions"`
}

// ParseYAML decodes a YAML mission document. The document is rendered into
// text lines and validated by ParseLines, so both formats obey the same rules.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed(0, "empty mission document")
		}
		return nil, malformed(0, "invalid mission document: %v", err)
	}

	if doc.Plateau == nil {
		return nil, malformed(0, "mission document has no plateau")
	}

	mission, err := ParseLines(doc.Lines())
	if err != nil {
		return nil, err
	}
	doc.Mission = mission
	return &doc, nil
}

// Lines renders the document into the text mission format
func (d *Document) Lines() []string {
	lines := make([]string, 0, 1+2*len(d.Rovers))
	if d.Plateau != nil {
		lines = append(lines, fmt.Sprintf("%d %d", d.Plateau.Width, d.Plateau.Height))
	}
	for _, rover := range d.Rovers {
		lines = append(lines, fmt.Sprintf("%d %d %s", rover.X, rover.Y, rover.Heading), rover.Instructions)
	}
	return lines
}

// Mission source formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// DetectFormat guesses the format of mission source. Text missions never
// contain a colon, so any colon or a leading document marker means YAML.
func DetectFormat(source string) string {
	trimmed := strings.TrimSpace(source)
	if strings.HasPrefix(trimmed, "---") || strings.Contains(trimmed, ":") {
		return FormatYAML
	}
	return FormatText
}

// ParseSource parses mission source in either format
func ParseSource(source string) (*Mission, string, error) {
	format := DetectFormat(source)
	if format == FormatYAML {
		doc, err := ParseYAML([]byte(source))
		if err != nil {
			return nil, format, err
		}
		return doc.Mission, format, nil
	}

	mission, err := ParseString(source)
	return mission, format, err
}
