package job

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/cheese"
)

// Length is a distance in metres. In YAML it is either a bare number of
// metres or a string with a unit suffix: "200nm", "25um", "0.1mm".
type Length float64

var units = []struct {
	suffix string
	scale  float64
}{
	{"nm", 1e-9},
	{"um", 1e-6},
	{"µm", 1e-6},
	{"mm", 1e-3},
	{"cm", 1e-2},
	{"m", 1},
}

// ParseLength parses a length with an optional unit suffix. A bare
// number is taken as metres.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	scale := 1.0
	for _, u := range units {
		if num, ok := strings.CutSuffix(s, u.suffix); ok {
			s, scale = strings.TrimSpace(num), u.scale
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("job: bad length %q", s)
	}
	return Length(v * scale), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Length) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("job: line %d: length must be a scalar", n.Line)
	}
	v, err := ParseLength(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*l = v
	return nil
}

// Shape is a hole shape selector. In YAML it is the number used by the
// renderer options (0 or 1) or a name ("rectangle", "circle").
type Shape int

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Shape) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("job: line %d: cheese_shape must be a scalar", n.Line)
	}
	switch strings.ToLower(strings.TrimSpace(n.Value)) {
	case "rectangle", "rect", "square":
		*s = 0
		return nil
	case "circle":
		*s = 1
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(n.Value))
	if err != nil {
		return fmt.Errorf("job: line %d: unknown cheese_shape %q", n.Line, n.Value)
	}
	*s = Shape(v)
	return nil
}

// Cap is a keep-out trace end style: "flat", "round", "square", or the
// numbers 1 (round), 2 (flat) and 3 (square) used by the renderer
// options.
type Cap int

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Cap) UnmarshalYAML(n *yaml.Node) error {
	v, err := style(n, "cap_style", map[string]int{
		"round": int(cheese.CapRound), "1": int(cheese.CapRound),
		"flat": int(cheese.CapFlat), "2": int(cheese.CapFlat),
		"square": int(cheese.CapSquare), "3": int(cheese.CapSquare),
	})
	if err != nil {
		return err
	}
	*c = Cap(v)
	return nil
}

// Join is a keep-out corner style: "mitre", "round", "bevel", or the
// numbers 1 (round), 2 (mitre) and 3 (bevel).
type Join int

// UnmarshalYAML implements yaml.Unmarshaler.
func (j *Join) UnmarshalYAML(n *yaml.Node) error {
	v, err := style(n, "join_style", map[string]int{
		"round": int(cheese.JoinRound), "1": int(cheese.JoinRound),
		"mitre": int(cheese.JoinMitre), "miter": int(cheese.JoinMitre), "2": int(cheese.JoinMitre),
		"bevel": int(cheese.JoinBevel), "3": int(cheese.JoinBevel),
	})
	if err != nil {
		return err
	}
	*j = Join(v)
	return nil
}

func style(n *yaml.Node, key string, names map[string]int) (int, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("job: line %d: %s must be a scalar", n.Line, key)
	}
	v, ok := names[strings.ToLower(strings.TrimSpace(n.Value))]
	if !ok {
		return 0, fmt.Errorf("job: line %d: unknown %s %q", n.Line, key, n.Value)
	}
	return v, nil
}
