package broadcast

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/models"
)

const templateExt = ".json"

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// TemplateStore reads broadcast templates stored as <name>.json files in Dir.
type TemplateStore struct {
	Dir string
}

func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{Dir: dir}
}

func (ts *TemplateStore) List() ([]string, error) {
	entries, err := os.ReadDir(ts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "ReadDir")
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != templateExt {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), templateExt))
	}
	sort.Strings(names)

	return names, nil
}

func (ts *TemplateStore) Load(name string) (data *models.BroadcastTemplate, err error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, errors.Wrapf(models.ErrTemplateNotFound, "template %q", name)
	}

	raw, err := os.ReadFile(filepath.Join(ts.Dir, name+templateExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(models.ErrTemplateNotFound, "template %q", name)
		}
		return nil, errors.Wrap(err, "ReadFile")
	}

	data = &models.BroadcastTemplate{}
	if err := jsoniter.Unmarshal(raw, data); err != nil {
		return nil, errors.Wrapf(err, "template %q is malformed", name)
	}

	if data.Name == "" {
		data.Name = name
	}

	logrus.WithField("template", name).Info("broadcast template loaded")

	return data, nil
}

// FormatMessage substitutes {key} placeholders. When a placeholder has no value
// the template message is returned untouched.
func FormatMessage(tpl *models.BroadcastTemplate, vars map[string]string) string {
	var missing []string
	for _, match := range placeholderRe.FindAllStringSubmatch(tpl.Message, -1) {
		if _, ok := vars[match[1]]; !ok {
			missing = append(missing, match[1])
		}
	}

	if len(missing) > 0 {
		logrus.WithField("template", tpl.Name).Warnf("template variables missing: %s", strings.Join(missing, ", "))
		return tpl.Message
	}

	return placeholderRe.ReplaceAllStringFunc(tpl.Message, func(placeholder string) string {
		return vars[placeholder[1:len(placeholder)-1]]
	})
}
