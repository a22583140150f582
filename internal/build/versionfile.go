package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gitflow-tools/gitflow/internal/constants"
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// YAML keys of the structured version file format.
const (
	yamlVersionKey    = "version"
	yamlPropertiesKey = "properties"
)

// VersionFile keeps the project version in a file instead of a build
// descriptor. Two formats are supported:
//
//	VERSION        a single line holding the version
//	version.yaml   a mapping with a "version" key and an optional
//	               "properties" mapping written by SetProperty
//
// The format is chosen by the file extension. Comments and unrelated keys of
// a YAML file are preserved on write.
type VersionFile struct {
	workDir        string
	path           string
	yaml           bool
	argLine        string
	testCommand    string
	installCommand string
	runner         CommandRunner
}

// NewVersionFile creates a VersionFile tool.
func NewVersionFile(opts Options) (*VersionFile, error) {
	if err := ValidateArgLine(opts.ArgLine); err != nil {
		return nil, err
	}

	name := opts.VersionFile
	if name == "" {
		name = constants.DefaultVersionFileName
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.WorkDir, name)
	}
	runner := opts.Runner
	if runner == nil {
		runner = &DefaultCommandRunner{}
	}

	ext := strings.ToLower(filepath.Ext(path))
	return &VersionFile{
		workDir:        opts.WorkDir,
		path:           path,
		yaml:           ext == ".yaml" || ext == ".yml",
		argLine:        strings.TrimSpace(opts.ArgLine),
		testCommand:    strings.TrimSpace(opts.TestCommand),
		installCommand: strings.TrimSpace(opts.InstallCommand),
		runner:         runner,
	}, nil
}

// Name implements Tool.
func (v *VersionFile) Name() string {
	return constants.BuildToolVersionFile
}

// CurrentVersion reads the version from the file.
func (v *VersionFile) CurrentVersion(_ context.Context) (string, error) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("version file %s does not exist: %w", v.path, gferrors.ErrConfiguration)
		}
		return "", fmt.Errorf("read version file: %w", err)
	}

	var version string
	if v.yaml {
		doc, err := decodeYAMLDocument(data)
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", v.path, err)
		}
		if node := mappingValue(doc, yamlVersionKey); node != nil {
			version = strings.TrimSpace(node.Value)
		}
	} else {
		version = firstLine(string(data))
	}

	if version == "" {
		return "", fmt.Errorf("%s holds no version: %w", v.path, gferrors.ErrBlankVersion)
	}
	return version, nil
}

// SetVersion writes the version. forceUpdate has no meaning for a single file.
func (v *VersionFile) SetVersion(ctx context.Context, version string, _ bool) error {
	zerolog.Ctx(ctx).Info().Str("version", version).Str("file", v.path).Msg("setting project version")

	if !v.yaml {
		return v.write([]byte(version + "\n"))
	}
	return v.updateYAML(func(doc *yaml.Node) {
		setMappingValue(doc, yamlVersionKey, version)
	})
}

// SetProperty writes name below the properties mapping. Plain version files
// have no properties.
func (v *VersionFile) SetProperty(ctx context.Context, name, value string) error {
	if name == "" {
		return fmt.Errorf("property name cannot be empty: %w", gferrors.ErrEmptyValue)
	}
	if !v.yaml {
		return fmt.Errorf("%s cannot hold property %s: %w", filepath.Base(v.path), name, gferrors.ErrUnsupported)
	}

	zerolog.Ctx(ctx).Info().Str("property", name).Str("value", value).Msg("setting project property")
	return v.updateYAML(func(doc *yaml.Node) {
		props := mappingValue(doc, yamlPropertiesKey)
		if props == nil || props.Kind != yaml.MappingNode {
			props = &yaml.Node{Kind: yaml.MappingNode}
			setMappingNode(doc, yamlPropertiesKey, props)
		}
		setMappingValue(props, name, value)
	})
}

// RunGoals runs goals as a shell command.
func (v *VersionFile) RunGoals(ctx context.Context, goals string) error {
	if strings.TrimSpace(goals) == "" {
		return nil
	}
	if err := ValidateArgLine(goals); err != nil {
		return err
	}
	return v.shell(ctx, goals)
}

// Test runs the configured test command. No command means nothing to do.
func (v *VersionFile) Test(ctx context.Context) error {
	if v.testCommand == "" {
		zerolog.Ctx(ctx).Debug().Msg("no test command configured")
		return nil
	}
	return v.shell(ctx, v.testCommand)
}

// Install runs the configured install command. No command means nothing to do.
func (v *VersionFile) Install(ctx context.Context) error {
	if v.installCommand == "" {
		zerolog.Ctx(ctx).Debug().Msg("no install command configured")
		return nil
	}
	return v.shell(ctx, v.installCommand)
}

func (v *VersionFile) shell(ctx context.Context, command string) error {
	if v.argLine != "" {
		command += " " + v.argLine
	}
	zerolog.Ctx(ctx).Info().Str("command", command).Msg("running command")
	if _, err := execute(ctx, v.runner, v.workDir, ShellCommand(command)); err != nil {
		return fmt.Errorf("run %q: %w", command, err)
	}
	return nil
}

func (v *VersionFile) updateYAML(mutate func(doc *yaml.Node)) error {
	data, err := os.ReadFile(v.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read version file: %w", err)
	}

	doc, err := decodeYAMLDocument(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", v.path, err)
	}
	mutate(doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{doc}}); err != nil {
		return fmt.Errorf("encode %s: %w", v.path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", v.path, err)
	}
	return v.write(buf.Bytes())
}

func (v *VersionFile) write(data []byte) error {
	if err := os.WriteFile(v.path, data, 0o644); err != nil { //nolint:gosec // project file, same mode as the rest of the tree
		return fmt.Errorf("write version file: %w", err)
	}
	return nil
}

// decodeYAMLDocument returns the top-level mapping of data, or an empty
// mapping for empty input.
func decodeYAMLDocument(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", err, gferrors.ErrConfiguration)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping: %w", gferrors.ErrConfiguration)
	}
	return doc, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setMappingValue(m *yaml.Node, key, value string) {
	setMappingNode(m, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func setMappingNode(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			// keep comments attached to the old value
			value.HeadComment = m.Content[i+1].HeadComment
			value.LineComment = m.Content[i+1].LineComment
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

var _ Tool = (*VersionFile)(nil)
