package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DependencyRecord maps one project-local alias to its source. When the
// alias equals the source entry name, Rule is empty and the record
// serializes as a bare URL string; otherwise it serializes as
// {"url": ..., "rule": ...}.
type DependencyRecord struct {
	URL  string
	Rule string
}

// SourceName returns the entry name inside the source repository for
// the given alias.
func (r DependencyRecord) SourceName(alias string) string {
	if r.Rule != "" {
		return r.Rule
	}
	return alias
}

// MarshalJSON writes the compact bare-string form when the record is
// not aliased.
func (r DependencyRecord) MarshalJSON() ([]byte, error) {
	if r.Rule == "" {
		return json.Marshal(r.URL)
	}
	return json.Marshal(struct {
		URL  string `json:"url"`
		Rule string `json:"rule"`
	}{URL: r.URL, Rule: r.Rule})
}

// UnmarshalJSON accepts both the bare-string and the object form.
func (r *DependencyRecord) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		r.URL = url
		r.Rule = ""
		return nil
	}
	var obj struct {
		URL  string `json:"url"`
		Rule string `json:"rule"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("dependency record must be a URL string or an object: %w", err)
	}
	r.URL = obj.URL
	r.Rule = obj.Rule
	return nil
}

// DependencySection maps alias -> record within one adapter's config
// section. Aliases are unique within a section.
type DependencySection map[string]DependencyRecord

// DependencyTree is the canonical in-memory shape of a project
// dependency manifest: tool -> subtype -> alias -> record.
type DependencyTree map[string]map[string]DependencySection

// Section returns the section for (tool, subtype), or nil.
func (t DependencyTree) Section(tool, subtype string) DependencySection {
	if t == nil {
		return nil
	}
	subtypes, ok := t[tool]
	if !ok {
		return nil
	}
	return subtypes[subtype]
}

// Set stores a record, creating intermediate maps as needed.
func (t DependencyTree) Set(tool, subtype, alias string, record DependencyRecord) {
	subtypes, ok := t[tool]
	if !ok {
		subtypes = make(map[string]DependencySection)
		t[tool] = subtypes
	}
	section, ok := subtypes[subtype]
	if !ok {
		section = make(DependencySection)
		subtypes[subtype] = section
	}
	section[alias] = record
}

// Delete removes an alias from a section, pruning empty maps so the
// serialized file stays minimal. Returns true when the alias existed.
func (t DependencyTree) Delete(tool, subtype, alias string) bool {
	section := t.Section(tool, subtype)
	if section == nil {
		return false
	}
	if _, ok := section[alias]; !ok {
		return false
	}
	delete(section, alias)
	if len(section) == 0 {
		delete(t[tool], subtype)
		if len(t[tool]) == 0 {
			delete(t, tool)
		}
	}
	return true
}

// Merge overlays other onto t; entries in other win for identical
// aliases. Used to combine public and private manifests.
func (t DependencyTree) Merge(other DependencyTree) {
	for tool, subtypes := range other {
		for subtype, section := range subtypes {
			for alias, record := range section {
				t.Set(tool, subtype, alias, record)
			}
		}
	}
}

// IsEmpty reports whether the tree holds no records at all.
func (t DependencyTree) IsEmpty() bool {
	for _, subtypes := range t {
		for _, section := range subtypes {
			if len(section) > 0 {
				return false
			}
		}
	}
	return true
}

// Aliases returns the sorted aliases of a section.
func (s DependencySection) Aliases() []string {
	aliases := make([]string, 0, len(s))
	for alias := range s {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
