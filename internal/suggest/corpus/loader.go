package corpus

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Load builds a corpus from an ordered list of sources. Each source is a
// file or a directory scanned non-recursively for eligible files. Earlier
// sources win canonical fields on name collisions; alias sets are unioned.
//
// Load never fails: unreadable sources and malformed records are skipped
// and reported in the returned warnings.
func Load(sources []string) (*Corpus, []Warning) {
	b := newBuilder()
	var warnings []Warning

	for _, src := range sources {
		for _, path := range expandSource(src, &warnings) {
			loadFile(b, path, &warnings)
		}
	}

	return b.build(), warnings
}

// loadFile parses a single vocabulary file into the builder.
func loadFile(b *builder, path string, warnings *[]Warning) {
	data, err := os.ReadFile(path)
	if err != nil {
		*warnings = append(*warnings, Warning{
			Kind:   WarnSourceUnreadable,
			Source: path,
			Detail: err.Error(),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			*warnings = append(*warnings, Warning{
				Kind:   WarnSourceUnreadable,
				Source: path,
				Detail: "bad gzip stream: " + err.Error(),
			})
			return
		}
		data, err = io.ReadAll(gz)
		if err != nil {
			*warnings = append(*warnings, Warning{
				Kind:   WarnSourceUnreadable,
				Source: path,
				Detail: "bad gzip stream: " + err.Error(),
			})
			return
		}
		// Nested extension decides the inner format (tags.csv.gz, tags.json.gz).
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz")))
	}

	switch ext {
	case ".csv":
		parseCSV(b, path, data, warnings)
	case ".json":
		parseJSON(b, path, data, warnings)
	case ".yaml", ".yml":
		parseYAML(b, path, data, warnings)
	default:
		parseTXT(b, data)
	}
}

// parseCSV reads delimited records in the a1111 tag-autocomplete layout:
// name, category, count, aliases. A header row is detected by column names;
// without one the columns are positional.
func parseCSV(b *builder, source string, data []byte, warnings *[]Warning) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	nameIdx, categoryIdx, countIdx, aliasIdx := 0, 1, 2, 3

	line := 0
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			return
		}
		line++
		if err != nil {
			*warnings = append(*warnings, Warning{
				Kind:   WarnMalformedRecord,
				Source: source,
				Line:   line,
				Detail: err.Error(),
			})
			continue
		}

		if first {
			first = false
			if hdr := headerIndices(row); hdr != nil {
				nameIdx, categoryIdx, countIdx, aliasIdx = hdr[0], hdr[1], hdr[2], hdr[3]
				continue
			}
		}

		name := field(row, nameIdx)
		if name == "" {
			*warnings = append(*warnings, Warning{
				Kind:   WarnMalformedRecord,
				Source: source,
				Line:   line,
				Detail: "missing tag name",
			})
			continue
		}

		category, err := intField(row, categoryIdx)
		if err != nil {
			*warnings = append(*warnings, Warning{
				Kind:   WarnMalformedRecord,
				Source: source,
				Line:   line,
				Detail: "bad category: " + err.Error(),
			})
			continue
		}

		count, err := intField(row, countIdx)
		if err != nil {
			*warnings = append(*warnings, Warning{
				Kind:   WarnMalformedRecord,
				Source: source,
				Line:   line,
				Detail: "bad count: " + err.Error(),
			})
			continue
		}

		b.add(name, category, int64(count), splitAliases(field(row, aliasIdx)))
	}
}

// headerIndices returns column positions if the row looks like a header,
// or nil for a data row.
func headerIndices(row []string) []int {
	known := map[string]int{}
	isHeader := false
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "name", "tag":
			known["name"] = i
			isHeader = true
		case "category", "type":
			known["category"] = i
			isHeader = true
		case "count", "frequency", "post_count":
			known["count"] = i
			isHeader = true
		case "alias", "aliases":
			known["alias"] = i
			isHeader = true
		}
	}
	if !isHeader {
		return nil
	}
	idx := func(key string, fallback int) int {
		if i, ok := known[key]; ok {
			return i
		}
		return fallback
	}
	return []int{idx("name", 0), idx("category", -1), idx("count", -1), idx("alias", -1)}
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func intField(row []string, idx int) (int, error) {
	s := field(row, idx)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

// splitAliases splits an alias sub-list on commas or semicolons.
func splitAliases(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(strings.ReplaceAll(s, ";", ","), ",")
	aliases := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			aliases = append(aliases, p)
		}
	}
	return aliases
}

// parseJSON reads either a list of records (strings or objects with
// name/category/count/aliases fields) or a flat object mapping canonical
// names to an alias or alias list.
func parseJSON(b *builder, source string, data []byte, warnings *[]Warning) {
	doc := gjson.ParseBytes(data)

	switch {
	case doc.IsArray():
		i := 0
		doc.ForEach(func(_, elem gjson.Result) bool {
			i++
			switch {
			case elem.Type == gjson.String:
				b.add(elem.String(), 0, 0, nil)
			case elem.IsObject():
				name := elem.Get("name")
				if !name.Exists() {
					name = elem.Get("tag")
				}
				if !name.Exists() || name.String() == "" {
					*warnings = append(*warnings, Warning{
						Kind:   WarnMalformedRecord,
						Source: source,
						Line:   i,
						Detail: "record has no name",
					})
					return true
				}
				count := elem.Get("count")
				if !count.Exists() {
					count = elem.Get("frequency")
				}
				b.add(name.String(), int(elem.Get("category").Int()), count.Int(), jsonAliases(elem.Get("aliases")))
			default:
				*warnings = append(*warnings, Warning{
					Kind:   WarnMalformedRecord,
					Source: source,
					Line:   i,
					Detail: "record is neither a string nor an object",
				})
			}
			return true
		})

	case doc.IsObject():
		doc.ForEach(func(key, value gjson.Result) bool {
			b.add(key.String(), 0, 0, jsonAliases(value))
			return true
		})

	default:
		*warnings = append(*warnings, Warning{
			Kind:   WarnSourceUnreadable,
			Source: source,
			Detail: "top-level JSON value must be an array or object",
		})
	}
}

// jsonAliases accepts an alias list, a single alias string, or nothing.
func jsonAliases(res gjson.Result) []string {
	switch {
	case res.IsArray():
		var aliases []string
		res.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.String && v.String() != "" {
				aliases = append(aliases, v.String())
			}
			return true
		})
		return aliases
	case res.Type == gjson.String:
		return splitAliases(res.String())
	default:
		return nil
	}
}

// yamlRecord mirrors the JSON record shape for YAML vocabularies.
type yamlRecord struct {
	Name      string   `yaml:"name"`
	Category  int      `yaml:"category"`
	Count     int64    `yaml:"count"`
	Frequency int64    `yaml:"frequency"`
	Aliases   []string `yaml:"aliases"`
}

// parseYAML reads a YAML list whose items are records or plain tag names.
func parseYAML(b *builder, source string, data []byte, warnings *[]Warning) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		*warnings = append(*warnings, Warning{
			Kind:   WarnSourceUnreadable,
			Source: source,
			Detail: "not a YAML list: " + err.Error(),
		})
		return
	}

	for _, node := range nodes {
		switch node.Kind {
		case yaml.ScalarNode:
			b.add(node.Value, 0, 0, nil)
		case yaml.MappingNode:
			var rec yamlRecord
			if err := node.Decode(&rec); err != nil || rec.Name == "" {
				detail := "record has no name"
				if err != nil {
					detail = err.Error()
				}
				*warnings = append(*warnings, Warning{
					Kind:   WarnMalformedRecord,
					Source: source,
					Line:   node.Line,
					Detail: detail,
				})
				continue
			}
			count := rec.Count
			if count == 0 {
				count = rec.Frequency
			}
			b.add(rec.Name, rec.Category, count, rec.Aliases)
		default:
			*warnings = append(*warnings, Warning{
				Kind:   WarnMalformedRecord,
				Source: source,
				Line:   node.Line,
				Detail: "record is neither a string nor a mapping",
			})
		}
	}
}

// parseTXT reads newline-delimited tag names. Text after the first comma on
// a line is ignored so count-annotated dumps still load.
func parseTXT(b *builder, data []byte) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line != "" {
			b.add(line, 0, 0, nil)
		}
	}
}
