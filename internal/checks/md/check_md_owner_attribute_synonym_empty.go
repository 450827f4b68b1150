package md

import (
	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	MdOwnerAttributeSynonymEmptyID = "md-owner-attribute-synonym-empty"

	StandardAttributeOwner  = "Owner"
	StandardAttributeParent = "Parent"
)

// MdOwnerAttributeSynonymEmptyCheck requires a synonym on the Owner standard
// attribute of subordinate objects and on the Parent standard attribute of
// hierarchical ones. A standard attribute that is not described at all counts
// as having an empty synonym.
type MdOwnerAttributeSynonymEmptyCheck struct {
	base
}

func NewMdOwnerAttributeSynonymEmpty(cat *messages.Catalog) *MdOwnerAttributeSynonymEmptyCheck {
	return &MdOwnerAttributeSynonymEmptyCheck{base: base{
		cat:         cat,
		id:          MdOwnerAttributeSynonymEmptyID,
		title:       messages.OwnerSynonymTitle,
		description: messages.OwnerSynonymDescription,
		kinds:       []model.Kind{model.KindCatalog, model.KindChartOfCharacteristicTypes},
		severity:    checks.SeverityMinor,
		typ:         checks.TypeUIStyle,
	}}
}

func (c *MdOwnerAttributeSynonymEmptyCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, _ checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	if len(obj.Strings(model.FeatureOwners)) > 0 {
		c.checkStandardAttribute(obj, StandardAttributeOwner, messages.OwnerSynonymOwnerMessage, acceptor)
	}
	if obj.Bool(model.FeatureHierarchical) {
		c.checkStandardAttribute(obj, StandardAttributeParent, messages.OwnerSynonymParentMessage, acceptor)
	}
	return nil
}

func (c *MdOwnerAttributeSynonymEmptyCheck) checkStandardAttribute(obj model.Object, name string, key messages.Key, acceptor checks.ResultAcceptor) {
	for _, attr := range obj.Children(model.FeatureStandardAttributes) {
		if attr.Name() != name {
			continue
		}
		if attr.Local(model.FeatureSynonym).IsBlank() {
			acceptor.AddIssue(attr, model.FeatureSynonym, c.cat.Text(key))
		}
		return
	}
	acceptor.AddIssue(obj, model.FeatureStandardAttributes, c.cat.Text(key))
}
