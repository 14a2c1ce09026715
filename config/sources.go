package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// loadFromFiles layers, lowest first: built-in defaults, the JSON file at
// configPath, the dotenv file at envPath, then the process environment.
// Missing files are skipped.
func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	for _, src := range []struct {
		path  string
		merge func(string, map[string]string) error
	}{
		{configPath, mergeJSONConfig},
		{envPath, mergeDotEnv},
	} {
		if err := src.merge(src.path, loaded); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	for key := range loaded {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()
	return nil
}

// mergeJSONConfig flattens nested objects into upper-case keys joined by
// '_', so {"solve": {"timeout": "2s"}} sets SOLVE_TIMEOUT. Scalars are
// stored in their JSON text form; arrays are ignored.
func mergeJSONConfig(path string, out map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	flatten("", raw, out)
	return nil
}

func flatten(prefix string, in map[string]interface{}, out map[string]string) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := strings.ToUpper(strings.TrimSpace(k))
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "_" + name
		}

		switch v := in[k].(type) {
		case map[string]interface{}:
			flatten(name, v, out)
		case string:
			out[name] = strings.TrimSpace(v)
		case float64:
			out[name] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[name] = strconv.FormatBool(v)
		}
	}
}

// mergeDotEnv reads KEY=VALUE lines. Blank lines, # comments and an
// optional "export " prefix are allowed. Unquoted values lose a trailing
// " # comment"; quoted values are taken literally.
func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		key = strings.ToUpper(strings.TrimSpace(key))
		if !ok || key == "" {
			continue
		}
		out[key] = dotEnvValue(strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

func dotEnvValue(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	if i := strings.Index(v, " #"); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
