package mapper

import (
	"reflect"
	"slices"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultProfileName is the profile of type maps created without WithProfile.
const DefaultProfileName = "default"

// Profile groups behavioral switches shared by the type maps that name it.
type Profile struct {
	mu       sync.RWMutex
	onChange func()

	name                      string
	mapNullSourceValuesAsNull bool
	formatters                []ValueFormatter
	typeFormatters            map[reflect.Type][]ValueFormatter
	locale                    language.Tag
	printer                   *message.Printer
}

func newProfile(name string, mapNullAsNull bool, onChange func()) *Profile {
	return &Profile{
		name:                      name,
		mapNullSourceValuesAsNull: mapNullAsNull,
		typeFormatters:            map[reflect.Type][]ValueFormatter{},
		onChange:                  onChange,
	}
}

func (p *Profile) Name() string { return p.name }

func (p *Profile) MapNullSourceValuesAsNull() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.mapNullSourceValuesAsNull
}

// SetMapNullSourceValuesAsNull chooses between returning the zero destination
// for a nil source and running the mapping with nothing to read from.
func (p *Profile) SetMapNullSourceValuesAsNull(enabled bool) *Profile {
	p.mu.Lock()
	p.mapNullSourceValuesAsNull = enabled
	p.mu.Unlock()

	p.changed()

	return p
}

// AddFormatter applies formatter to every value rendered under this profile.
func (p *Profile) AddFormatter(formatter ValueFormatter) *Profile {
	p.mu.Lock()
	p.formatters = append(p.formatters, formatter)
	p.mu.Unlock()

	p.changed()

	return p
}

// ForSourceType applies formatter to values of type t rendered under this profile.
func (p *Profile) ForSourceType(t reflect.Type, formatter ValueFormatter) *Profile {
	p.mu.Lock()
	p.typeFormatters[t] = append(p.typeFormatters[t], formatter)
	p.mu.Unlock()

	p.changed()

	return p
}

func (p *Profile) Formatters() []ValueFormatter {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.formatters)
}

func (p *Profile) FormattersFor(t reflect.Type) []ValueFormatter {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.typeFormatters[t])
}

// SetLocale makes default rendering locale aware.
func (p *Profile) SetLocale(tag language.Tag) *Profile {
	p.mu.Lock()
	p.locale = tag
	p.printer = message.NewPrinter(tag)
	p.mu.Unlock()

	p.changed()

	return p
}

func (p *Profile) Locale() (language.Tag, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.locale, p.printer != nil
}

// Printer is nil unless a locale was set.
func (p *Profile) Printer() *message.Printer {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.printer
}

func (p *Profile) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}
