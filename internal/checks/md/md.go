// Package md holds the metadata object checks.
//
// Every check is built from a message catalog and carries no other state, so
// a single instance serves concurrent invocations.
package md

import (
	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

// All returns every metadata check, resolving texts from cat.
func All(cat *messages.Catalog) []checks.Check {
	return []checks.Check{
		NewCommonModuleNameClient(cat),
		NewCommonModuleNameClientServer(cat),
		NewCommonModuleNameGlobal(cat),
		NewCommonModuleNameServerCall(cat),
		NewCommonModuleType(cat),
		NewConfigurationDataLockMode(cat),
		NewDbObjectAnyRefType(cat),
		NewDbObjectRefNonRefType(cat),
		NewExtensionMdObjectPrefix(cat),
		NewMdObjectNameLength(cat),
		NewMdListObjectPresentation(cat),
		NewMdOwnerAttributeSynonymEmpty(cat),
		NewScheduledJobDescription(cat),
		NewScheduledJobPeriodicity(cat),
		NewUnsafePasswordIbStorage(cat),
		NewRegisterResourcePrecision(cat),
		NewSubsystemSynonymTooLong(cat),
	}
}

// NewRegistry returns a registry holding All(cat).
func NewRegistry(cat *messages.Catalog) *checks.Registry {
	return checks.NewRegistry(All(cat)...)
}

// base carries the descriptor shared by all checks.
type base struct {
	cat         *messages.Catalog
	id          string
	title       messages.Key
	description messages.Key
	kinds       []model.Kind
	severity    checks.Severity
	typ         checks.IssueType
}

func (b *base) ID() string                { return b.id }
func (b *base) Title() string             { return b.cat.Text(b.title) }
func (b *base) Description() string       { return b.cat.Text(b.description) }
func (b *base) Severity() checks.Severity { return b.severity }
func (b *base) Type() checks.IssueType    { return b.typ }

func (b *base) Kinds() []model.Kind {
	return append([]model.Kind(nil), b.kinds...)
}

// applies guards Check against objects outside the kind set. Only the kind is
// consulted, so rejected objects see no feature reads.
func (b *base) applies(obj model.Object) bool {
	if obj == nil {
		return false
	}
	k := obj.Kind()
	for _, ck := range b.kinds {
		if ck == k {
			return true
		}
	}
	return false
}

func (b *base) option(name string, typ checks.OptionType, def string, key messages.Key) checks.Option {
	return checks.Option{Name: name, Type: typ, Default: def, Description: b.cat.Text(key)}
}

// storedFields returns the attributes, dimensions and resources of a data
// object, including the attributes of its tabular sections.
func storedFields(obj model.Object) []model.Object {
	var out []model.Object
	out = append(out, obj.Children(model.FeatureAttributes)...)
	for _, ts := range obj.Children(model.FeatureTabularSections) {
		out = append(out, ts.Children(model.FeatureAttributes)...)
	}
	out = append(out, obj.Children(model.FeatureDimensions)...)
	out = append(out, obj.Children(model.FeatureResources)...)
	return out
}

func kindsExcept(kinds []model.Kind, skip ...model.Kind) []model.Kind {
	var out []model.Kind
next:
	for _, k := range kinds {
		for _, s := range skip {
			if k == s {
				continue next
			}
		}
		out = append(out, k)
	}
	return out
}
