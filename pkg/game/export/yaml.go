// Package export writes carved mazes to YAML and PNG files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"mazerunner/pkg/engine/maze"
	"mazerunner/pkg/engine/world"
)

// ErrNotSolved is returned when a maze has no start and end yet
var ErrNotSolved = errors.New("export: maze has no path")

// Info describes how a maze was made
type Info struct {
	Carver string
	Seed   int64
}

// MazeYAML represents a carved maze in YAML format
type MazeYAML struct {
	Topology       string    `yaml:"topology"`
	Carver         string    `yaml:"carver,omitempty"`
	Seed           int64     `yaml:"seed"`
	Cells          int       `yaml:"cells"`
	Passages       int       `yaml:"passages"`
	Start          string    `yaml:"start"`
	End            string    `yaml:"end"`
	SolutionLength int       `yaml:"solution_length"`
	Nodes          yaml.Node `yaml:"nodes"`
}

// NodeYAML is one cell and its open exits, keyed by direction name
type NodeYAML struct {
	Layer int               `yaml:"layer,omitempty"`
	X     float64           `yaml:"x"`
	Y     float64           `yaml:"y"`
	Exits map[string]string `yaml:"exits,omitempty"`
}

// getNodeID generates a node ID from the cell's coordinate
func getNodeID(c *world.Cell) string {
	return c.ID.String()
}

// NewMazeYAML converts a solved maze to its YAML form
func NewMazeYAML(m *maze.Maze, info Info) (*MazeYAML, error) {
	if !m.HasPath() {
		return nil, ErrNotSolved
	}
	topo := m.Topology()
	out := &MazeYAML{
		Topology:       topo.Name(),
		Carver:         info.Carver,
		Seed:           info.Seed,
		Cells:          len(m.Cells()),
		Passages:       m.EdgeCount(),
		Start:          getNodeID(m.Start()),
		End:            getNodeID(m.End()),
		SolutionLength: m.SolutionLength(m.End()),
		Nodes:          yaml.Node{Kind: yaml.MappingNode},
	}

	// Cells are already in generation order
	for _, c := range m.Cells() {
		valueNode := yaml.Node{Kind: yaml.MappingNode}
		if c.Pos.Layer != 0 {
			addScalarField(&valueNode, "layer", strconv.Itoa(c.Pos.Layer))
		}
		addScalarField(&valueNode, "x", strconv.FormatFloat(c.Pos.X, 'g', -1, 64))
		addScalarField(&valueNode, "y", strconv.FormatFloat(c.Pos.Y, 'g', -1, 64))

		exits := yaml.Node{Kind: yaml.MappingNode}
		for d := range c.Arity() {
			dir := world.Direction(d)
			if c.IsConnectedIn(dir) {
				addScalarField(&exits, topo.DirectionName(dir), getNodeID(c.Neighbor(dir)))
			}
		}
		if len(exits.Content) > 0 {
			valueNode.Content = append(valueNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "exits"},
				&exits,
			)
		}

		out.Nodes.Content = append(out.Nodes.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: getNodeID(c), Style: yaml.DoubleQuotedStyle},
			&valueNode,
		)
	}
	return out, nil
}

// WriteYAML writes the maze as YAML with a short header comment
func WriteYAML(w io.Writer, m *maze.Maze, info Info) error {
	doc, err := NewMazeYAML(m, info)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# Mazerunner %s maze\n", doc.Topology)
	fmt.Fprintf(w, "# Total cells: %d\n\n", doc.Cells)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("export: failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteYAMLFile writes the maze as YAML to path
func WriteYAMLFile(path string, m *maze.Maze, info Info) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: failed to create file: %w", err)
	}
	return writeAndClose(f, path, func(w io.Writer) error {
		return WriteYAML(w, m, info)
	})
}

// writeAndClose runs write on wc and closes it. A failed close is reported
// when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, path string, write func(w io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("export: closing %s: %w", path, err)
	}
	return nil
}

// ReadYAML decodes a maze written by WriteYAML
func ReadYAML(r io.Reader) (*MazeYAML, error) {
	var doc MazeYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("export: failed to decode YAML: %w", err)
	}
	return &doc, nil
}

// DecodeNodes returns the nodes of doc keyed by ID
func (doc *MazeYAML) DecodeNodes() (map[string]NodeYAML, error) {
	nodes := make(map[string]NodeYAML)
	if err := doc.Nodes.Decode(&nodes); err != nil {
		return nil, fmt.Errorf("export: failed to decode nodes: %w", err)
	}
	return nodes, nil
}

func addScalarField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}
