package md

import (
	"strings"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	ExtensionMdObjectPrefixID = "extension-md-object-prefix"

	ObjectBelongingAdopted = "Adopted"
)

// ExtensionMdObjectPrefixCheck requires objects that an extension adds (as
// opposed to adopts from the base configuration) to start with the
// extension's name prefix.
type ExtensionMdObjectPrefixCheck struct {
	base
}

func NewExtensionMdObjectPrefix(cat *messages.Catalog) *ExtensionMdObjectPrefixCheck {
	return &ExtensionMdObjectPrefixCheck{base: base{
		cat:         cat,
		id:          ExtensionMdObjectPrefixID,
		title:       messages.ExtensionPrefixTitle,
		description: messages.ExtensionPrefixDescription,
		kinds:       kindsExcept(model.TopLevelKinds(), model.KindConfiguration),
		severity:    checks.SeverityCritical,
		typ:         checks.TypeError,
	}}
}

func (c *ExtensionMdObjectPrefixCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, _ checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	cfg := obj.Configuration()
	if cfg == nil || cfg.Text(model.FeatureConfigurationExtensionPurpose) == "" {
		return nil
	}
	prefix := cfg.Text(model.FeatureNamePrefix)
	if prefix == "" || obj.Text(model.FeatureObjectBelonging) == ObjectBelongingAdopted {
		return nil
	}
	if !strings.HasPrefix(obj.Name(), prefix) {
		acceptor.AddIssue(obj, model.FeatureName, c.cat.Format(messages.ExtensionPrefixMessage, prefix))
	}
	return nil
}
