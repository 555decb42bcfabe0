package mapping

import (
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/text/language"

	"object-mapper/internal/diagnostic"
	"object-mapper/mapper"
)

// Apply validates mf against reg and writes its profiles and type maps onto
// cfg. Nothing is written when the file has errors. Otherwise the result also
// holds what cfg.Validate reports for the type maps of the file, so unmapped
// members show up here too.
func Apply(cfg *mapper.Configuration, mf *MappingFile, reg *Registry) *diagnostic.Diagnostics {
	if reg == nil {
		reg = NewRegistry()
	}

	res := Validate(mf, reg)
	if res.HasErrors() {
		return res
	}

	for _, def := range mf.Profiles {
		applyProfile(cfg, def)
	}

	applied := make([]*mapper.TypeMap, 0, len(mf.TypeMappings))

	for i := range mf.TypeMappings {
		if tm := applyTypeMapping(cfg, &mf.TypeMappings[i], reg, res); tm != nil {
			applied = append(applied, tm)
		}
	}

	if !res.HasErrors() {
		res.Merge(cfg.Validate(applied...))
	}

	cfg.Logger().Debug("mapping file applied",
		slog.Int("profiles", len(mf.Profiles)), slog.Int("type_maps", len(applied)),
		slog.Int("errors", len(res.Errors)), slog.Int("warnings", len(res.Warnings)))

	return res
}

func applyProfile(cfg *mapper.Configuration, def ProfileDef) {
	p := cfg.Profile(def.Name)

	if def.MapNullSourceValuesAsNull != nil {
		p.SetMapNullSourceValuesAsNull(*def.MapNullSourceValuesAsNull)
	}

	if def.Locale != "" {
		if tag, err := language.Parse(def.Locale); err == nil {
			p.SetLocale(tag)
		}
	}
}

func applyTypeMapping(cfg *mapper.Configuration, def *TypeMapping, reg *Registry, res *diagnostic.Diagnostics) *mapper.TypeMap {
	src, err := reg.LookupType(def.Source)
	if err != nil {
		res.AddError(diagnostic.CodeUnknownType, err.Error(), def.Pair(), "")
		return nil
	}

	dst, err := reg.LookupType(def.Target)
	if err != nil {
		res.AddError(diagnostic.CodeUnknownType, err.Error(), def.Pair(), "")
		return nil
	}

	tm := cfg.CreateTypeMap(src, dst)

	if def.Profile != "" {
		cfg.Profile(def.Profile)
		tm.SetProfile(def.Profile)
	}

	fail := func(member string, err error) {
		res.AddError(diagnostic.CodeUnknownMember, err.Error(), def.Pair(), member)
	}

	for _, source := range slices.Sorted(maps.Keys(def.OneToOne)) {
		target := def.OneToOne[source]
		if _, err := tm.MapFromPath(target, source); err != nil {
			fail(target, err)
		}
	}

	for i := range def.Fields {
		for _, target := range def.Fields[i].Target {
			if err := applyField(tm, target, &def.Fields[i], reg); err != nil {
				fail(target, err)
			}
		}
	}

	for _, ignored := range def.Ignore {
		pm, err := tm.FindPropertyMap(ignored)
		if err != nil {
			fail(ignored, err)
			continue
		}

		pm.Ignore()
	}

	for _, inc := range def.Include {
		isrc, err := reg.LookupType(inc.Source)
		if err != nil {
			res.AddError(diagnostic.CodeInvalidInclude, err.Error(), def.Pair(), "")
			continue
		}

		idst, err := reg.LookupType(inc.Target)
		if err != nil {
			res.AddError(diagnostic.CodeInvalidInclude, err.Error(), def.Pair(), "")
			continue
		}

		tm.IncludeDerivedTypes(isrc, idst)
	}

	return tm
}

func applyField(tm *mapper.TypeMap, target string, fm *FieldMapping, reg *Registry) error {
	var (
		pm  *mapper.PropertyMap
		err error
	)

	switch {
	case fm.Resolver != "":
		resolver, _ := reg.Resolver(fm.Resolver)
		pm, err = tm.ResolveUsingPath(target, resolver, fm.Source)
	case fm.Source != "":
		pm, err = tm.MapFromPath(target, fm.Source)
	default:
		pm, err = tm.FindPropertyMap(target)
	}

	if err != nil {
		return err
	}

	if fm.Ignore {
		pm.Ignore()
	}

	if fm.Order != 0 {
		pm.SetMappingOrder(fm.Order)
	}

	if fm.NullSubstitute != nil {
		pm.SetNullSubstitute(fm.NullSubstitute)
	}

	if fm.UseDestinationValue {
		pm.SetUseDestinationValue(true)
	}

	for _, name := range fm.Formatters {
		if formatter, ok := reg.Formatter(name); ok {
			pm.AddFormatter(formatter)
		}
	}

	return nil
}
