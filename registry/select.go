package registry

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/glbind/errors"
)

// ParseVersion parses an API version such as "4.5" or "1.0".
func ParseVersion(v string) (*semver.Version, error) {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "version %q", v), errors.ErrInvalidRegistry)
	}
	return parsed, nil
}

// featureAPI maps an identity's API onto the API name features are tagged with.
func featureAPI(api API) API {
	if api == APIGlCore {
		return APIGl
	}
	return api
}

// orderedSet keeps insertion order and supports removal.
type orderedSet struct {
	order []string
	in    map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{in: make(map[string]bool)}
}

func (s *orderedSet) add(names ...string) {
	for _, n := range names {
		if _, seen := s.in[n]; !seen {
			s.order = append(s.order, n)
		}
		s.in[n] = true
	}
}

func (s *orderedSet) remove(names ...string) {
	for _, n := range names {
		if _, seen := s.in[n]; seen {
			s.in[n] = false
		}
	}
}

func (s *orderedSet) has(name string) bool {
	return s.in[name]
}

// Select narrows a document to one identity plus a list of extensions.
//
// Features whose API matches and whose number is at or below the requested
// version contribute their require blocks; remove blocks for the requested
// profile are subtracted afterwards. Requested extensions are added last and
// are never removed. A document without features selects everything. The
// order of enums and commands follows the document. Groups are kept whole.
func Select(doc *Document, id Identity, extensions []string) (*Registry, error) {
	if doc == nil {
		return nil, errors.NewInvalidRegistryError("nil registry document")
	}

	var want *semver.Version
	if id.Version != "" {
		v, err := ParseVersion(id.Version)
		if err != nil {
			return nil, err
		}
		want = v
	}

	enums := newOrderedSet()
	cmds := newOrderedSet()

	if len(doc.Features) == 0 {
		for _, e := range doc.Enums {
			enums.add(e.Ident)
		}
		for _, c := range doc.Commands {
			cmds.add(c.Ident)
		}
	}

	var removed []Interface
	for _, f := range doc.Features {
		if f.API != featureAPI(id.API) {
			continue
		}
		if want != nil {
			number, err := ParseVersion(f.Number)
			if err != nil {
				return nil, errors.Wrapf(err, "feature %s", f.Name)
			}
			if number.GreaterThan(want) {
				continue
			}
		}
		for _, req := range f.Require {
			if appliesTo(req, id.Profile) {
				enums.add(req.Enums...)
				cmds.add(req.Commands...)
			}
		}
		for _, rem := range f.Remove {
			if appliesTo(rem, id.Profile) {
				removed = append(removed, rem)
			}
		}
	}
	for _, rem := range removed {
		enums.remove(rem.Enums...)
		cmds.remove(rem.Commands...)
	}

	for _, name := range extensions {
		ext, ok := findExtension(doc, name)
		if !ok {
			return nil, errors.WithHint(
				errors.NewNotFoundError("extension %s", name),
				"list the extension under 'extensions' in the registry document")
		}
		if len(ext.Supported) > 0 && !supports(ext, featureAPI(id.API)) {
			return nil, errors.NewInvalidRegistryError("extension %s does not support api %s", name, id.API)
		}
		for _, req := range ext.Require {
			if appliesTo(req, id.Profile) {
				enums.add(req.Enums...)
				cmds.add(req.Commands...)
			}
		}
	}

	reg := &Registry{
		Identity: id,
		Groups:   make(map[string]Group, len(doc.Groups)),
		Aliases:  make(map[string][]string),
	}
	for _, e := range doc.Enums {
		if enums.has(e.Ident) {
			reg.Enums = append(reg.Enums, e)
		}
	}
	for _, c := range doc.Commands {
		if cmds.has(c.Ident) {
			reg.Cmds = append(reg.Cmds, c)
		}
	}
	for _, g := range doc.Groups {
		if _, dup := reg.Groups[g.Ident]; dup {
			// First declaration wins; later ones are dropped.
			continue
		}
		reg.Groups[g.Ident] = g
	}

	if id.Fallbacks != FallbacksNone {
		reg.Aliases = deriveAliases(doc, cmds)
	}

	return reg, nil
}

// appliesTo reports whether a require/remove block is relevant to profile.
// Profile-tagged blocks only apply when that profile was requested.
func appliesTo(block Interface, profile Profile) bool {
	return block.Profile == "" || block.Profile == profile
}

func findExtension(doc *Document, name string) (Extension, bool) {
	for _, ext := range doc.Extensions {
		if ext.Name == name {
			return ext, true
		}
	}
	return Extension{}, false
}

func supports(ext Extension, api API) bool {
	for _, s := range ext.Supported {
		if s == api {
			return true
		}
	}
	return false
}

// deriveAliases builds the fallback lists for selected commands: explicit
// document aliases first, then every command naming it as its alias, then the
// command it aliases itself.
func deriveAliases(doc *Document, selected *orderedSet) map[string][]string {
	aliases := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	add := func(from, to string) {
		if from == to || !selected.has(from) {
			return
		}
		if seen[from] == nil {
			seen[from] = make(map[string]bool)
		}
		if seen[from][to] {
			return
		}
		seen[from][to] = true
		aliases[from] = append(aliases[from], to)
	}

	for _, c := range doc.Commands {
		for _, fb := range doc.Aliases[c.Ident] {
			add(c.Ident, fb)
		}
	}
	for _, c := range doc.Commands {
		if c.Alias == "" {
			continue
		}
		add(c.Alias, c.Ident)
		add(c.Ident, c.Alias)
	}

	return aliases
}
