// Package archieml parses ArchieML markup into nested maps.
//
// It covers the core of the format: key/value lines, {object} scopes,
// [arrays] of strings or objects, multi-line values terminated by :end,
// :skip/:endskip blocks and the :ignore command.
package archieml

import (
	"regexp"
	"strings"
)

var (
	keyPattern        = regexp.MustCompile(`^\s*([A-Za-z0-9\-_.]+)[ \t]*:[ \t]*(.*)$`)
	commandPattern    = regexp.MustCompile(`^\s*:[ \t]*(endskip|ignore|skip|end)`)
	scopePattern      = regexp.MustCompile(`^\s*\{[ \t]*([A-Za-z0-9\-_.]*)[ \t]*\}`)
	arrayPattern      = regexp.MustCompile(`^\s*\[[ \t]*([A-Za-z0-9\-_.]*)[ \t]*\]`)
	simpleItemPattern = regexp.MustCompile(`^\s*\*[ \t]*(.*)$`)
)

type parser struct {
	data  map[string]any
	scope map[string]any

	array         []any
	arrayName     string
	arrayParent   map[string]any
	arrayFirstKey string
	arrayElement  map[string]any

	skipping bool

	// multi-line value accumulation, flushed by :end
	bufKey    string
	bufScope  map[string]any
	bufLines  []string
	buffering bool
}

// Parse interprets input as ArchieML and returns the resulting structure.
func Parse(input string) map[string]any {
	p := &parser{data: make(map[string]any)}
	p.scope = p.data

	for _, line := range strings.Split(input, "\n") {
		if done := p.line(line); done {
			break
		}
	}
	p.commitArray()
	return p.data
}

func (p *parser) line(line string) bool {
	if m := commandPattern.FindStringSubmatch(line); m != nil {
		switch strings.ToLower(m[1]) {
		case "skip":
			p.skipping = true
			p.dropBuffer()
		case "endskip":
			p.skipping = false
		case "ignore":
			return true
		case "end":
			p.flushBuffer()
		}
		return false
	}
	if p.skipping {
		return false
	}

	switch {
	case keyPattern.MatchString(line):
		m := keyPattern.FindStringSubmatch(line)
		p.dropBuffer()
		p.setKey(m[1], strings.TrimRight(m[2], " \t"))
	case scopePattern.MatchString(line):
		m := scopePattern.FindStringSubmatch(line)
		p.dropBuffer()
		p.commitArray()
		p.openScope(m[1])
	case arrayPattern.MatchString(line):
		m := arrayPattern.FindStringSubmatch(line)
		p.dropBuffer()
		p.commitArray()
		if m[1] != "" {
			p.openArray(m[1])
		}
	case p.array != nil && p.arrayFirstKey == "" && simpleItemPattern.MatchString(line):
		m := simpleItemPattern.FindStringSubmatch(line)
		p.dropBuffer()
		p.array = append(p.array, strings.TrimRight(m[1], " \t"))
	default:
		if p.buffering {
			p.bufLines = append(p.bufLines, unescape(line))
		}
	}
	return false
}

func (p *parser) setKey(key, value string) {
	if p.array != nil {
		if p.arrayFirstKey == "" || p.arrayFirstKey == key {
			p.arrayFirstKey = key
			p.arrayElement = make(map[string]any)
			p.array = append(p.array, p.arrayElement)
		}
		if p.arrayElement == nil {
			p.arrayElement = make(map[string]any)
			p.array = append(p.array, p.arrayElement)
		}
		target := descend(p.arrayElement, key)
		leaf := leafKey(key)
		target[leaf] = value
		p.startBuffer(leaf, target, value)
		return
	}

	target := descend(p.scope, key)
	leaf := leafKey(key)
	target[leaf] = value
	p.startBuffer(leaf, target, value)
}

func (p *parser) openScope(name string) {
	if name == "" {
		p.scope = p.data
		return
	}
	p.scope = descendFull(p.data, name)
}

func (p *parser) openArray(name string) {
	parent := p.scope
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		parent = descend(p.scope, name)
		name = name[idx+1:]
	}
	p.array = []any{}
	p.arrayName = name
	p.arrayParent = parent
	p.arrayFirstKey = ""
	p.arrayElement = nil
}

func (p *parser) commitArray() {
	if p.array == nil {
		return
	}
	p.arrayParent[p.arrayName] = p.array
	p.array = nil
	p.arrayParent = nil
	p.arrayName = ""
	p.arrayFirstKey = ""
	p.arrayElement = nil
}

func (p *parser) startBuffer(key string, scope map[string]any, first string) {
	p.bufKey = key
	p.bufScope = scope
	p.bufLines = []string{first}
	p.buffering = true
}

func (p *parser) dropBuffer() {
	p.buffering = false
	p.bufLines = nil
	p.bufScope = nil
	p.bufKey = ""
}

func (p *parser) flushBuffer() {
	if !p.buffering {
		return
	}
	joined := strings.TrimSpace(strings.Join(p.bufLines, "\n"))
	p.bufScope[p.bufKey] = joined
	p.dropBuffer()
}

// descend walks dotted key segments, creating intermediate maps, and
// returns the map owning the final segment.
func descend(root map[string]any, key string) map[string]any {
	parts := strings.Split(key, ".")
	cur := root
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	return cur
}

// descendFull walks every segment of a dotted path and returns the map
// at the path itself.
func descendFull(root map[string]any, path string) map[string]any {
	cur := root
	for _, part := range strings.Split(path, ".") {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	return cur
}

func leafKey(key string) string {
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

// unescape drops a single leading backslash used to include lines that
// would otherwise be parsed as markup.
func unescape(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, `\`) {
		return trimmed[1:]
	}
	return line
}
