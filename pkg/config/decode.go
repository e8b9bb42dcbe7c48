package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/animwrap/pkg/easing"
	"github.com/go-drift/animwrap/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report YAML field names so errors match what the author wrote.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode parses a single animation config from YAML.
func Decode(data []byte) (Config, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse animation config: %w", err)
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		return DecodeNode(node.Content[0])
	}
	return DecodeNode(&node)
}

// DecodeNode decodes the config in a YAML mapping node, dispatching on its
// "type" key. The result has been validated.
func DecodeNode(node *yaml.Node) (Config, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &errors.ConfigError{Reason: fmt.Sprintf("line %d: animation config must be a mapping", node.Line)}
	}
	typ, err := discriminant(node)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch typ {
	case TypeScale:
		var c Scale
		err = node.Decode(&c)
		cfg = c
	case TypeFadeIn, TypeFadeOut:
		var c Fade
		err = node.Decode(&c)
		c.Direction = directionOf(typ)
		cfg = c
	case TypeSlideIn, TypeSlideOut:
		var c Slide
		err = node.Decode(&c)
		c.Direction = directionOf(typ)
		cfg = c
	case TypeBounce:
		var c Bounce
		err = node.Decode(&c)
		cfg = c
	case TypeRipple:
		var c Ripple
		err = node.Decode(&c)
		cfg = c
	case TypeWiggle:
		var c Wiggle
		err = node.Decode(&c)
		cfg = c
	case TypeDraggable:
		var c Draggable
		err = node.Decode(&c)
		cfg = c
	case TypeJSON:
		return nil, &errors.ConfigError{Field: "type", Value: typ, Reason: "JSON (Lottie) animations are not supported"}
	default:
		return nil, &errors.ConfigError{Field: "type", Value: typ, Reason: "unknown animation type"}
	}
	if err != nil {
		return nil, &errors.ConfigError{Field: string(typ), Reason: err.Error()}
	}
	if err := checkFields(node, reflect.TypeOf(cfg), ""); err != nil {
		return nil, err
	}
	if typ == TypeScale && !hasKey(node, "toScale") {
		return nil, &errors.ConfigError{Field: "toScale", Reason: fmt.Sprintf("line %d: required for %s", node.Line, TypeScale)}
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var unmarshalerType = reflect.TypeFor[yaml.Unmarshaler]()

// checkFields rejects any key in node that no yaml field of t accepts, so a
// misspelled key fails instead of leaving a zero value behind. Nested
// mappings are checked against the field they decode into.
func checkFields(node *yaml.Node, t reflect.Type, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || node.Kind != yaml.MappingNode || reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}
	fields := yamlFields(t)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if path == "" && key.Value == "type" {
			continue
		}
		name := key.Value
		if path != "" {
			name = path + "." + key.Value
		}
		ft, ok := fields[key.Value]
		if !ok {
			return &errors.ConfigError{Field: name, Value: value.Value, Reason: fmt.Sprintf("line %d: unknown field", key.Line)}
		}
		if err := checkFields(value, ft, name); err != nil {
			return err
		}
	}
	return nil
}

// yamlFields maps each yaml key of struct t to its field type, flattening
// inline fields.
func yamlFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type)
	for i := range t.NumField() {
		f := t.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "inline") {
			for k, v := range yamlFields(f.Type) {
				fields[k] = v
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		fields[name] = f.Type
	}
	return fields
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

func discriminant(node *yaml.Node) (Type, error) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "type" {
			return Type(strings.ToUpper(strings.TrimSpace(node.Content[i+1].Value))), nil
		}
	}
	return "", &errors.ConfigError{Field: "type", Value: "", Reason: fmt.Sprintf("line %d: missing animation type", node.Line)}
}

func directionOf(t Type) Direction {
	if t == TypeFadeOut || t == TypeSlideOut {
		return DirectionOut
	}
	return DirectionIn
}

// Validate checks field ranges and resolves the easing descriptor, so that
// a config that passes can always be mounted.
func Validate(cfg Config) error {
	if cfg == nil {
		return &errors.ConfigError{Reason: "config is nil"}
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &errors.ConfigError{
				Field:  fieldPath(fe.Namespace()),
				Value:  fe.Value(),
				Reason: fmt.Sprintf("failed %q constraint %s", fe.Tag(), fe.Param()),
			}
		}
		return &errors.ConfigError{Reason: err.Error()}
	}
	if _, err := easing.Resolve(cfg.Common().Interpolation); err != nil {
		return err
	}
	return nil
}

// fieldPath turns "Scale.Base.animationDuration" into "animationDuration".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	var out []string
	for i, p := range parts {
		if i == 0 || p == "Base" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ".")
}

// Document is a file of named animation configs:
//
//	animations:
//	  pop:
//	    type: SCALE
//	    toScale: 1.2
type Document struct {
	Animations map[string]Config
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Animations map[string]yaml.Node `yaml:"animations"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	d.Animations = make(map[string]Config, len(raw.Animations))
	for name, node := range raw.Animations {
		cfg, err := DecodeNode(&node)
		if err != nil {
			return fmt.Errorf("animation %q: %w", name, err)
		}
		d.Animations[name] = cfg
	}
	return nil
}

// Names returns the animation names in sorted order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Animations))
	for name := range d.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named animation.
func (d *Document) Lookup(name string) (Config, error) {
	cfg, ok := d.Animations[name]
	if !ok {
		return nil, fmt.Errorf("no animation named %q (have %s)", name, strings.Join(d.Names(), ", "))
	}
	return cfg, nil
}

// ParseDocument parses a document from YAML.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Animations == nil {
		doc.Animations = map[string]Config{}
	}
	return &doc, nil
}

// Load reads and parses a document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
