package mapping

import (
	"fmt"
	"reflect"
	"slices"

	"golang.org/x/text/language"

	"object-mapper/internal/diagnostic"
	"object-mapper/internal/match"
	"object-mapper/mapper"
)

const maxSuggestions = 3

// Validate checks a mapping file. Without a registry only the structure is
// checked: versions, profile references, duplicates, path syntax and
// conflicting options. With one, type names, members, formatters and
// resolvers are resolved too.
func Validate(mf *MappingFile, reg *Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if mf.Version != CurrentVersion {
		res.AddError(diagnostic.CodeUnsupportedVersion,
			fmt.Sprintf("unsupported schema version %q, expected %q", mf.Version, CurrentVersion), "", "")
	}

	profiles := validateProfiles(res, mf.Profiles)

	seenPairs := map[[2]string]struct{}{}

	for i := range mf.TypeMappings {
		tm := &mf.TypeMappings[i]

		key := [2]string{tm.Source, tm.Target}
		if _, ok := seenPairs[key]; ok {
			res.AddError(diagnostic.CodeDuplicateMapping, "pair is declared more than once", tm.Pair(), "")
			continue
		}

		seenPairs[key] = struct{}{}

		v := &typeMappingValidator{res: res, reg: reg, tm: tm, pair: tm.Pair()}
		v.validate(profiles)
	}

	return res
}

func validateProfiles(res *diagnostic.Diagnostics, defs []ProfileDef) []string {
	names := []string{mapper.DefaultProfileName}

	for _, def := range defs {
		if def.Name == "" {
			res.AddError(diagnostic.CodeConflictingOptions, "profile without a name", "", "")
			continue
		}

		if slices.Contains(names, def.Name) && def.Name != mapper.DefaultProfileName {
			res.AddError(diagnostic.CodeDuplicateProfile, fmt.Sprintf("profile %q is declared more than once", def.Name), "", "")
			continue
		}

		if def.Locale != "" {
			if _, err := language.Parse(def.Locale); err != nil {
				res.AddError(diagnostic.CodeInvalidLocale,
					fmt.Sprintf("profile %q: invalid locale %q: %v", def.Name, def.Locale, err), "", "")
			}
		}

		names = append(names, def.Name)
	}

	return names
}

type typeMappingValidator struct {
	res  *diagnostic.Diagnostics
	reg  *Registry
	tm   *TypeMapping
	pair string

	src, dst reflect.Type
}

func (v *typeMappingValidator) validate(profiles []string) {
	if v.tm.Profile != "" && !slices.Contains(profiles, v.tm.Profile) {
		v.res.AddErrorWithSuggestions(diagnostic.CodeUnknownProfile,
			fmt.Sprintf("profile %q is not declared", v.tm.Profile), v.pair, "",
			match.Suggest(v.tm.Profile, profiles, match.SuggestionThreshold, maxSuggestions))
	}

	if v.reg != nil {
		v.src = v.lookupType(v.tm.Source, "source")
		v.dst = v.lookupType(v.tm.Target, "target")
	}

	for source, target := range v.tm.OneToOne {
		v.validateSourcePath(source)
		v.validateTarget(target)
	}

	for i := range v.tm.Fields {
		v.validateField(&v.tm.Fields[i])
	}

	for _, ignored := range v.tm.Ignore {
		v.validateTarget(ignored)
	}

	for _, inc := range v.tm.Include {
		v.validateInclude(inc)
	}
}

func (v *typeMappingValidator) lookupType(id, side string) reflect.Type {
	if id == "" {
		v.res.AddError(diagnostic.CodeUnknownType, side+" type is empty", v.pair, "")
		return nil
	}

	t, err := v.reg.LookupType(id)
	if err != nil {
		v.res.AddErrorWithSuggestions(diagnostic.CodeUnknownType, err.Error(), v.pair, "",
			match.Suggest(id, v.reg.TypeNames(), match.SuggestionThreshold, maxSuggestions))

		return nil
	}

	return t
}

func (v *typeMappingValidator) validateField(fm *FieldMapping) {
	if fm.Target.IsEmpty() {
		v.res.AddError(diagnostic.CodeInvalidPath, "field mapping without a target", v.pair, "")
		return
	}

	for _, target := range fm.Target {
		v.validateTarget(target)

		if fm.Ignore && (fm.Source != "" || fm.Resolver != "" || fm.NullSubstitute != nil || !fm.Formatters.IsEmpty()) {
			v.res.AddError(diagnostic.CodeConflictingOptions,
				"ignored member cannot also have a source, resolver, formatter or null substitute", v.pair, target)
		}

		if slices.Contains(v.tm.Ignore, target) && !fm.Ignore {
			v.res.AddWarning(diagnostic.CodeConflictingOptions,
				"member is configured in fields and listed in ignore, ignore wins", v.pair, target)
		}
	}

	if fm.Source != "" {
		v.validateSourcePath(fm.Source)
	}

	if fm.Resolver != "" && v.reg != nil {
		if _, ok := v.reg.Resolver(fm.Resolver); !ok {
			v.res.AddErrorWithSuggestions(diagnostic.CodeUnknownResolver,
				fmt.Sprintf("resolver %q is not registered", fm.Resolver), v.pair, fm.Target.First(),
				match.Suggest(fm.Resolver, v.reg.ResolverNames(), match.SuggestionThreshold, maxSuggestions))
		}
	}

	for _, name := range fm.Formatters {
		if v.reg == nil {
			continue
		}

		if _, ok := v.reg.Formatter(name); !ok {
			v.res.AddErrorWithSuggestions(diagnostic.CodeUnknownFormatter,
				fmt.Sprintf("formatter %q is not registered", name), v.pair, fm.Target.First(),
				match.Suggest(name, v.reg.FormatterNames(), match.SuggestionThreshold, maxSuggestions))
		}
	}
}

// validateTarget checks a single destination member name, which cannot be a path.
func (v *typeMappingValidator) validateTarget(target string) {
	segments, err := ParsePath(target)
	if err != nil {
		v.res.AddError(diagnostic.CodeInvalidPath, fmt.Sprintf("invalid target: %v", err), v.pair, target)
		return
	}

	if len(segments) > 1 {
		v.res.AddError(diagnostic.CodeInvalidPath, "target must be a member of the target type, not a path", v.pair, target)
		return
	}

	if v.dst == nil {
		return
	}

	member, ok := mapper.FindMember(v.dst, target)
	if !ok || !member.CanWrite() {
		v.res.AddErrorWithSuggestions(diagnostic.CodeUnknownMember,
			"target type has no writable member "+target, v.pair, target,
			match.Suggest(target, writableNames(v.dst), match.SuggestionThreshold, maxSuggestions))
	}
}

// validateSourcePath walks a dotted path through the source members.
func (v *typeMappingValidator) validateSourcePath(path string) {
	segments, err := ParsePath(path)
	if err != nil {
		v.res.AddError(diagnostic.CodeInvalidPath, fmt.Sprintf("invalid source: %v", err), v.pair, path)
		return
	}

	t := v.src
	for _, seg := range segments {
		if t == nil {
			return
		}

		member, ok := mapper.FindMember(t, seg)
		if !ok {
			v.res.AddErrorWithSuggestions(diagnostic.CodeUnknownMember,
				fmt.Sprintf("source path %s: %s has no member %s", path, t, seg), v.pair, path,
				match.Suggest(seg, memberNames(t), match.SuggestionThreshold, maxSuggestions))

			return
		}

		t = member.Type()
	}
}

func (v *typeMappingValidator) validateInclude(inc IncludeDef) {
	if v.reg == nil {
		if inc.Source == "" || inc.Target == "" {
			v.res.AddError(diagnostic.CodeInvalidInclude, "include needs a source and a target", v.pair, "")
		}

		return
	}

	src := v.lookupType(inc.Source, "included source")
	dst := v.lookupType(inc.Target, "included target")

	if src == nil || dst == nil || v.src == nil || v.dst == nil {
		return
	}

	if !src.AssignableTo(v.src) || !dst.AssignableTo(v.dst) {
		v.res.AddError(diagnostic.CodeInvalidInclude,
			fmt.Sprintf("included pair %s -> %s does not derive from the mapped pair", inc.Source, inc.Target), v.pair, "")
	}
}

func memberNames(t reflect.Type) []string {
	var names []string
	for _, m := range mapper.Members(t) {
		names = append(names, m.Name())
	}

	return names
}

func writableNames(t reflect.Type) []string {
	var names []string

	for _, m := range mapper.Members(t) {
		if m.CanWrite() {
			names = append(names, m.Name())
		}
	}

	return names
}
