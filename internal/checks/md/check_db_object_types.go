package md

import (
	"strings"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	DbObjectAnyRefTypeID    = "db-object-anyref-type"
	DbObjectRefNonRefTypeID = "db-object-ref-non-ref-type"

	OptionAnyRefTypes = "anyRefTypes"

	defaultAnyRefTypes = "AnyRef,CatalogRef,DocumentRef,EnumRef,ChartOfCharacteristicTypesRef," +
		"ChartOfAccountsRef,ChartOfCalculationTypesRef,ExchangePlanRef,BusinessProcessRef,TaskRef"
)

// DbObjectAnyRefTypeCheck reports stored fields typed as a reference to any
// object, or to any object of a whole class.
type DbObjectAnyRefTypeCheck struct {
	base
}

func NewDbObjectAnyRefType(cat *messages.Catalog) *DbObjectAnyRefTypeCheck {
	return &DbObjectAnyRefTypeCheck{base: base{
		cat:         cat,
		id:          DbObjectAnyRefTypeID,
		title:       messages.DbObjectAnyRefTitle,
		description: messages.DbObjectAnyRefDescription,
		kinds:       model.DataObjectKinds(),
		severity:    checks.SeverityMajor,
		typ:         checks.TypePerformance,
	}}
}

func (c *DbObjectAnyRefTypeCheck) Options() []checks.Option {
	return []checks.Option{
		c.option(OptionAnyRefTypes, checks.OptionList, defaultAnyRefTypes, messages.OptionAnyRefTypes),
	}
}

func (c *DbObjectAnyRefTypeCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, params checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	forbidden := make(map[string]bool)
	for _, t := range params.List(OptionAnyRefTypes) {
		forbidden[t] = true
	}
	if len(forbidden) == 0 {
		return nil
	}

	for _, field := range storedFields(obj) {
		for _, t := range field.Strings(model.FeatureType) {
			if forbidden[t] {
				acceptor.AddIssue(field, model.FeatureType, c.cat.Format(messages.DbObjectAnyRefMessage, t))
			}
		}
	}
	return nil
}

// DbObjectRefNonRefTypeCheck reports composite field types that combine
// reference types with primitive ones.
type DbObjectRefNonRefTypeCheck struct {
	base
}

func NewDbObjectRefNonRefType(cat *messages.Catalog) *DbObjectRefNonRefTypeCheck {
	return &DbObjectRefNonRefTypeCheck{base: base{
		cat:         cat,
		id:          DbObjectRefNonRefTypeID,
		title:       messages.DbObjectRefNonRefTitle,
		description: messages.DbObjectRefNonRefDescription,
		kinds:       model.DataObjectKinds(),
		severity:    checks.SeverityMajor,
		typ:         checks.TypePerformance,
	}}
}

func (c *DbObjectRefNonRefTypeCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, _ checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	for _, field := range storedFields(obj) {
		types := field.Strings(model.FeatureType)
		if len(types) < 2 {
			continue
		}
		var ref, nonRef bool
		for _, t := range types {
			if IsReferenceType(t) {
				ref = true
			} else {
				nonRef = true
			}
		}
		if ref && nonRef {
			acceptor.AddIssue(field, model.FeatureType, c.cat.Format(messages.DbObjectRefNonRefMessage, strings.Join(types, ", ")))
		}
	}
	return nil
}

// IsReferenceType reports whether a type name denotes an object reference:
// AnyRef, or a name whose class part (before the first dot) ends in "Ref",
// such as CatalogRef.Goods or DocumentRef.
func IsReferenceType(name string) bool {
	if name == "AnyRef" {
		return true
	}
	class, _, _ := strings.Cut(name, ".")
	return len(class) > len("Ref") && strings.HasSuffix(class, "Ref")
}
